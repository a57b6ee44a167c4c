package raster

import (
	"errors"
	"testing"

	"github.com/dshills/glyphmenu/internal/font"
)

// stubGlyphs is a 2x2 glyph source. 'a' is a diagonal, 'b' is solid and
// every other printable character is empty. Control characters have no
// glyph.
type stubGlyphs struct{}

func (stubGlyphs) GlyphWidth() int  { return 2 }
func (stubGlyphs) GlyphHeight() int { return 2 }

func (stubGlyphs) Glyph(ch rune) ([]byte, bool) {
	switch {
	case ch == 'a':
		return []byte{255, 0, 0, 255}, true
	case ch == 'b':
		return []byte{255, 255, 255, 255}, true
	case ch >= ' ' && ch <= '~':
		return []byte{0, 0, 0, 0}, true
	default:
		return nil, false
	}
}

var (
	testBG     = RGB(0x10, 0x20, 0x30)
	testFG     = RGB(0xE0, 0xD0, 0xC0)
	testCursor = RGB(0xFF, 0x00, 0x00)
	testTheme  = Theme{Background: testBG, Foreground: testFG, Cursor: testCursor}
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	cv, err := NewCanvas(make([]byte, w*h*BytesPerPixel), w, h)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	return cv
}

func TestNewCanvas(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		w, h    int
		wantErr bool
	}{
		{"exact", 4 * 3 * 4, 4, 3, false},
		{"larger", 100, 4, 3, false},
		{"short", 4*3*4 - 1, 4, 3, true},
		{"zero width", 16, 0, 3, true},
		{"negative height", 16, 2, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCanvas(make([]byte, tt.size), tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCanvas error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrBufferSize) {
				t.Errorf("error = %v, want ErrBufferSize", err)
			}
		})
	}
}

func TestCanvasLittleEndianARGB(t *testing.T) {
	pix := make([]byte, 2*1*BytesPerPixel+3)
	cv, err := NewCanvas(pix, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	cv.Fill(Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44})

	want := []byte{0x33, 0x22, 0x11, 0x44, 0x33, 0x22, 0x11, 0x44, 0, 0, 0}
	for i := range want {
		if pix[i] != want[i] {
			t.Fatalf("pix = % x, want % x", pix, want)
		}
	}
	if &cv.Pix()[0] != &pix[0] {
		t.Error("canvas does not alias the caller buffer")
	}
}

func TestCanvasClipping(t *testing.T) {
	cv := newTestCanvas(t, 3, 3)
	cv.Set(-1, 0, ColorWhite)
	cv.Set(0, 3, ColorWhite)
	cv.FillRect(-5, -5, 6, 6, ColorWhite)
	cv.FillRect(2, 2, 10, 10, testFG)

	if got := cv.At(0, 0); got != ColorWhite {
		t.Errorf("At(0,0) = %v, want white", got)
	}
	if got := cv.At(1, 1); got != (Color{}) {
		t.Errorf("At(1,1) = %v, want untouched", got)
	}
	if got := cv.At(2, 2); got != testFG {
		t.Errorf("At(2,2) = %v, want %v", got, testFG)
	}
	if got := cv.At(9, 9); got != (Color{}) {
		t.Errorf("At outside = %v, want zero", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", ColorBlack, false},
		{"#ffffff", ColorWhite, false},
		{"#FF8000", RGB(0xFF, 0x80, 0x00), false},
		{"102030", RGB(0x10, 0x20, 0x30), false},
		{"#fff", ColorWhite, false},
		{"#11223380", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x80}, false},
		{"", Color{}, true},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"#112233zz", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("error = %v, want ErrInvalidColor", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorStringAndARGB(t *testing.T) {
	c := RGB(0xAB, 0xCD, 0xEF)
	if c.String() != "#ABCDEF" {
		t.Errorf("String() = %q", c.String())
	}
	if c.ARGB() != 0xFFABCDEF {
		t.Errorf("ARGB() = %#x", c.ARGB())
	}
	c.A = 0x10
	if c.String() != "#ABCDEF10" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestPaletteEndpoints(t *testing.T) {
	p := newPalette(testBG, testFG)
	if p[0] != testBG || p[255] != testFG {
		t.Errorf("palette ends = %v, %v; want %v, %v", p[0], p[255], testBG, testFG)
	}
	mid := p[128]
	if mid.R <= testBG.R || mid.R >= testFG.R {
		t.Errorf("palette midpoint %v not between %v and %v", mid, testBG, testFG)
	}
	if testBG.Blend(testFG, -1) != testBG || testBG.Blend(testFG, 2) != testFG {
		t.Error("Blend does not clamp t")
	}
}

func TestFillUsesBackground(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 4, 4)
	comp.Fill(cv)
	for y := range 4 {
		for x := range 4 {
			if got := cv.At(x, y); got != testBG {
				t.Fatalf("At(%d,%d) = %v, want %v", x, y, got, testBG)
			}
		}
	}
}

func TestFillIsOpaque(t *testing.T) {
	translucent := Theme{Background: Color{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, Foreground: testFG, Cursor: testCursor}
	comp := NewCompositor(stubGlyphs{}, translucent, 1)
	if got := comp.Theme().Background; got != testBG {
		t.Errorf("Theme().Background = %v, want %v", got, testBG)
	}

	cv := newTestCanvas(t, 4, 2)
	comp.Fill(cv)
	comp.PaintLine(cv, 0, 0, " ", false)
	for x := range 4 {
		if got := cv.At(x, 0); got != testBG {
			t.Errorf("At(%d,0) = %v, want opaque %v", x, got, testBG)
		}
	}
}

// cellPixels returns the four pixels of the 2x2 cell at (line, col).
func cellPixels(cv *Canvas, line, col int) [4]Color {
	x, y := col*2, line*2
	return [4]Color{cv.At(x, y), cv.At(x+1, y), cv.At(x, y+1), cv.At(x+1, y+1)}
}

func TestPaintLine(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 8, 4)
	comp.Fill(cv)

	n := comp.PaintLine(cv, 1, 1, "ab", false)
	if n != 2 {
		t.Errorf("PaintLine returned %d, want 2", n)
	}

	diagonal := [4]Color{testFG, testBG, testBG, testFG}
	solid := [4]Color{testFG, testFG, testFG, testFG}
	empty := [4]Color{testBG, testBG, testBG, testBG}

	if got := cellPixels(cv, 1, 1); got != diagonal {
		t.Errorf("cell (1,1) = %v, want %v", got, diagonal)
	}
	if got := cellPixels(cv, 1, 2); got != solid {
		t.Errorf("cell (1,2) = %v, want %v", got, solid)
	}
	if got := cellPixels(cv, 1, 0); got != empty {
		t.Errorf("cell (1,0) = %v, want untouched", got)
	}
	if got := cellPixels(cv, 0, 1); got != empty {
		t.Errorf("line 0 touched: %v", got)
	}
}

func TestPaintLineHighlighted(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 4, 2)
	comp.Fill(cv)

	comp.PaintLine(cv, 0, 0, "a ", true)

	inverted := [4]Color{testBG, testFG, testFG, testBG}
	if got := cellPixels(cv, 0, 0); got != inverted {
		t.Errorf("highlighted 'a' = %v, want %v", got, inverted)
	}
	full := [4]Color{testFG, testFG, testFG, testFG}
	if got := cellPixels(cv, 0, 1); got != full {
		t.Errorf("highlighted space = %v, want %v", got, full)
	}
}

// A character with no glyph paints as a blank cell and the line
// continues in the next column.
func TestPaintLineMissingGlyphIsSkipped(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 6, 2)

	// Pre-fill with a color the compositor never produces so that an
	// untouched cell is detectable.
	sentinel := RGB(1, 2, 3)
	cv.Fill(sentinel)

	n := comp.PaintLine(cv, 0, 0, "a\x01b", false)
	if n != 3 {
		t.Fatalf("PaintLine returned %d, want 3", n)
	}
	blank := [4]Color{testBG, testBG, testBG, testBG}
	if got := cellPixels(cv, 0, 1); got != blank {
		t.Errorf("missing glyph cell = %v, want blank %v", got, blank)
	}
	solid := [4]Color{testFG, testFG, testFG, testFG}
	if got := cellPixels(cv, 0, 2); got != solid {
		t.Errorf("cell after missing glyph = %v, want %v", got, solid)
	}

	comp.PaintLine(cv, 0, 0, "\x7f", true)
	inverted := [4]Color{testFG, testFG, testFG, testFG}
	if got := cellPixels(cv, 0, 0); got != inverted {
		t.Errorf("highlighted missing glyph = %v, want %v", got, inverted)
	}
}

func TestPaintLineClips(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 3, 3)
	comp.Fill(cv)

	// Half a cell fits on the right, nothing fits below.
	if n := comp.PaintLine(cv, 0, 1, "bbbb", false); n != 4 {
		t.Errorf("PaintLine returned %d, want 4", n)
	}
	if got := cv.At(2, 1); got != testFG {
		t.Errorf("partially visible cell not painted: %v", got)
	}
	comp.PaintLine(cv, 5, 0, "bbbb", false)
	comp.PaintLine(cv, -1, 0, "bbbb", false)
	comp.PaintLine(cv, 1, -3, "bbbb", false)
	if got := cv.At(0, 2); got != testFG {
		t.Errorf("negative column: visible tail not painted: %v", got)
	}
}

func TestPaintLineGraphemeClusters(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 1)
	cv := newTestCanvas(t, 8, 2)
	comp.Fill(cv)

	// "a" followed by a combining acute accent is one cell.
	n := comp.PaintLine(cv, 0, 0, "a\u0301b", false)
	if n != 2 {
		t.Fatalf("PaintLine returned %d, want 2", n)
	}
	solid := [4]Color{testFG, testFG, testFG, testFG}
	if got := cellPixels(cv, 0, 1); got != solid {
		t.Errorf("cell 1 = %v, want 'b'", got)
	}
}

func TestPaintCursor(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, testTheme, 0)
	cv := newTestCanvas(t, 6, 4)
	comp.Fill(cv)

	comp.PaintCursor(cv, 1)
	for y := range 4 {
		for x := range 6 {
			want := testBG
			if x == 2 && y < 2 {
				want = testCursor
			}
			if got := cv.At(x, y); got != want {
				t.Errorf("At(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	comp.SetCursorWidth(5)
	comp.PaintCursor(cv, 2)
	if got := cv.At(5, 1); got != testCursor {
		t.Errorf("wide cursor not clipped to edge: %v", got)
	}
}

func TestCompositorGeometry(t *testing.T) {
	atlas, err := font.Default()
	if err != nil {
		t.Fatal(err)
	}
	comp := NewCompositor(atlas, DefaultTheme(), 2)
	cv := newTestCanvas(t, 100, 30)
	if comp.Columns(cv) != 100/atlas.GlyphWidth() {
		t.Errorf("Columns = %d", comp.Columns(cv))
	}
	if comp.Lines(cv) != 30/atlas.GlyphHeight() {
		t.Errorf("Lines = %d", comp.Lines(cv))
	}
}

func TestPaintLineWithAtlas(t *testing.T) {
	atlas, err := font.Default()
	if err != nil {
		t.Fatal(err)
	}
	gw, gh := atlas.GlyphWidth(), atlas.GlyphHeight()
	comp := NewCompositor(atlas, DefaultTheme(), 1)
	cv := newTestCanvas(t, gw*4, gh*2)
	comp.Fill(cv)

	comp.PaintLine(cv, 1, 2, "A", false)
	glyph, ok := atlas.Glyph('A')
	if !ok {
		t.Fatal("atlas has no 'A'")
	}
	for y := range gh {
		for x := range gw {
			want := ColorBlack
			if glyph[y*gw+x] == 255 {
				want = ColorWhite
			}
			if got := cv.At(2*gw+x, gh+y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSetTheme(t *testing.T) {
	comp := NewCompositor(stubGlyphs{}, DefaultTheme(), 1)
	comp.SetTheme(testTheme)
	if comp.Theme() != testTheme {
		t.Errorf("Theme() = %v", comp.Theme())
	}
	cv := newTestCanvas(t, 2, 2)
	comp.PaintLine(cv, 0, 0, "b", false)
	if got := cv.At(0, 0); got != testFG {
		t.Errorf("palette not rebuilt: %v", got)
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("#102030", "#e0d0c0", "#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	if th != testTheme {
		t.Errorf("ParseTheme = %+v, want %+v", th, testTheme)
	}
	if _, err := ParseTheme("#102030", "nope", "#ff0000"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad foreground error = %v", err)
	}
}
