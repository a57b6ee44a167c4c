package font

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// buildPBM encodes a P4 image where pixel reports the set bits.
func buildPBM(width, height int, pixel func(x, y int) bool) []byte {
	stride := (width + 7) / 8
	raster := make([]byte, stride*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixel(x, y) {
				raster[y*stride+x/8] |= 0x80 >> (x % 8)
			}
		}
	}
	return append([]byte(fmt.Sprintf("P4\n%d %d\n", width, height)), raster...)
}

func TestDecodeDefault(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if a.GlyphWidth() != 8 || a.GlyphHeight() != 8 {
		t.Fatalf("glyph size = %dx%d, want 8x8", a.GlyphWidth(), a.GlyphHeight())
	}

	space, ok := a.Glyph(' ')
	if !ok {
		t.Fatal("Glyph(' ') not found")
	}
	if !bytes.Equal(space, make([]byte, 64)) {
		t.Error("space glyph should be blank")
	}

	bang, _ := a.Glyph('!')
	lit := 0
	for _, v := range bang {
		if v == 255 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("'!' glyph should have foreground pixels")
	}

	again, _ := Default()
	if again != a {
		t.Error("Default() should return the shared atlas")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	const gw, gh = 4, 5

	// Glyph (0,0) carries a diagonal; other cells alternate solid/empty.
	pixel := func(x, y int) bool {
		row, col := y/gh, x/gw
		lx, ly := x%gw, y%gh
		if row == 0 && col == 0 {
			return lx == ly
		}
		return (row+col)%2 == 0
	}

	a, err := Decode(buildPBM(gw*Columns, gh*Rows, pixel))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			cell, ok := a.Cell(row, col)
			if !ok {
				t.Fatalf("Cell(%d, %d) missing", row, col)
			}
			for y := 0; y < gh; y++ {
				for x := 0; x < gw; x++ {
					want := byte(0)
					if pixel(col*gw+x, row*gh+y) {
						want = 255
					}
					if got := cell[y*gw+x]; got != want {
						t.Fatalf("Cell(%d, %d) at (%d, %d) = %d, want %d", row, col, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestDecodeSlotLayout(t *testing.T) {
	// Light exactly one glyph per row so slot arithmetic is observable.
	const gw, gh = 8, 2
	lit := map[[2]int]bool{{0, 1}: true, {1, 0}: true, {2, 31}: true}
	a, err := Decode(buildPBM(gw*Columns, gh*Rows, func(x, y int) bool {
		return lit[[2]int{y / gh, x / gw}]
	}))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	tests := []struct {
		ch  rune
		lit bool
	}{
		{' ', false},
		{'!', true},  // row 0, col 1
		{'@', true},  // row 1, col 0
		{'A', false}, // row 1, col 1
		{'~', false}, // row 2, col 30
	}
	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			g, ok := a.Glyph(tt.ch)
			if !ok {
				t.Fatalf("Glyph(%q) not found", tt.ch)
			}
			if got := g[0] == 255; got != tt.lit {
				t.Errorf("Glyph(%q) lit = %v, want %v", tt.ch, got, tt.lit)
			}
		})
	}

	// DEL occupies the last slot but is not printable.
	if _, ok := a.Glyph(0x7F); ok {
		t.Error("Glyph(DEL) should not be found")
	}
	if del, ok := a.Cell(2, 31); !ok || del[0] != 255 {
		t.Error("Cell(2, 31) should hold the lit DEL slot")
	}
}

func TestGlyphRange(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	for c := rune(' '); c <= '~'; c++ {
		g, ok := a.Glyph(c)
		if !ok {
			t.Errorf("Glyph(%q) not found", c)
			continue
		}
		if len(g) != a.GlyphWidth()*a.GlyphHeight() {
			t.Errorf("Glyph(%q) has %d samples", c, len(g))
		}
	}
	for _, c := range []rune{-1, 0, '\n', 0x1F, 0x7F, 0x80, 'é', '世'} {
		if _, ok := a.Glyph(c); ok {
			t.Errorf("Glyph(%U) should not be found", c)
		}
	}
	if _, ok := a.Cell(Rows, 0); ok {
		t.Error("Cell out of range should not be found")
	}
	if _, ok := a.Cell(0, -1); ok {
		t.Error("Cell out of range should not be found")
	}
}

func TestSlotOf(t *testing.T) {
	tests := []struct {
		ch       rune
		row, col int
	}{
		{' ', 0, 0},
		{'?', 0, 31},
		{'@', 1, 0},
		{'_', 1, 31},
		{'`', 2, 0},
		{'~', 2, 30},
	}
	for _, tt := range tests {
		row, col := SlotOf(tt.ch)
		if row != tt.row || col != tt.col {
			t.Errorf("SlotOf(%q) = (%d, %d), want (%d, %d)", tt.ch, row, col, tt.row, tt.col)
		}
	}
}

func TestDecodeComments(t *testing.T) {
	raster := make([]byte, 4*3)
	raster[0] = 0x80
	data := append([]byte("P4\n# generated 12 34\n#\n32 # width\n# height next\n3\n"), raster...)

	a, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if a.GlyphWidth() != 1 || a.GlyphHeight() != 1 {
		t.Errorf("glyph size = %dx%d, want 1x1", a.GlyphWidth(), a.GlyphHeight())
	}
	if g, _ := a.Glyph(' '); g[0] != 255 {
		t.Error("first pixel should be set")
	}
}

func TestDecodeRasterMayContainHeaderBytes(t *testing.T) {
	// '#' and '\n' inside the raster must not be read as header syntax.
	raster := bytes.Repeat([]byte{'#', '\n', ' '}, 4)
	data := append([]byte("P4 32 3\n"), raster...)
	a, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	// '#' is 0x23: bits 0010 0011, so pixel 2 of row 0 is set.
	row0, col2 := SlotOf(' ' + 2)
	if g, _ := a.Cell(row0, col2); g[0] != 255 {
		t.Error("raster byte '#' was not decoded as pixels")
	}
}

func TestDecodeRowStride(t *testing.T) {
	// Width 64 gives an 8-byte stride; a pixel on image row 1 must come
	// from byte 8, not byte 1.
	const width, height = 64, 3
	data := buildPBM(width, height, func(x, y int) bool { return x == 2 && y == 1 })
	a, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	// Glyphs are 2x1; image row 1 is glyph row 1, x=2 is column 1.
	g, _ := a.Cell(1, 1)
	if g[0] != 255 || g[1] != 0 {
		t.Errorf("Cell(1, 1) = %v, want [255 0]", g)
	}
	for _, other := range [][2]int{{0, 1}, {1, 0}, {2, 1}} {
		if c, _ := a.Cell(other[0], other[1]); c[0] != 0 || c[1] != 0 {
			t.Errorf("Cell(%d, %d) = %v, want blank", other[0], other[1], c)
		}
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	data := buildPBM(32, 3, func(x, y int) bool { return true })
	data = append(data, 0x00, 0xFF, '\n')
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrBadMagic},
		{"short magic", "P", ErrBadMagic},
		{"ascii pbm", "P1\n32 3\n", ErrBadMagic},
		{"greymap", "P5\n32 3\n", ErrBadMagic},
		{"magic suffix", "P45 32 3\n", ErrBadMagic},
		{"no dimensions", "P4\n", ErrBadDimensions},
		{"only width", "P4\n32\n", ErrBadDimensions},
		{"non numeric", "P4\nabc 3\n", ErrBadDimensions},
		{"trailing junk", "P4\n32 3x\n", ErrBadDimensions},
		{"zero width", "P4\n0 3\n", ErrBadDimensions},
		{"negative", "P4\n-32 3\n", ErrBadDimensions},
		{"comment only", "P4\n# 32 3\n", ErrBadDimensions},
		{"width not multiple of 32", "P4\n33 3\n", ErrInvalidAtlasShape},
		{"width 8", "P4\n8 3\n", ErrInvalidAtlasShape},
		{"height not multiple of 3", "P4\n32 4\n", ErrInvalidAtlasShape},
		{"no raster", "P4\n32 3", ErrTruncatedBitmap},
		{"short raster", "P4\n32 3\n" + string(make([]byte, 11)), ErrTruncatedBitmap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Decode([]byte(tt.data))
			if err == nil {
				t.Fatalf("Decode() = %v, want error", a)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Errorf("Decode() error %T is not a *FormatError", err)
			}
		})
	}
}

func TestDecodeShapeProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		w := 1 + rng.IntN(200)
		h := 1 + rng.IntN(30)
		data := buildPBM(w, h, func(x, y int) bool { return rng.IntN(2) == 0 })

		a, err := Decode(data)
		valid := w%Columns == 0 && h%Rows == 0
		if valid {
			if err != nil {
				t.Fatalf("%dx%d: Decode() error = %v", w, h, err)
			}
			if a.GlyphWidth()*Columns != w || a.GlyphHeight()*Rows != h {
				t.Fatalf("%dx%d: glyph size %dx%d", w, h, a.GlyphWidth(), a.GlyphHeight())
			}
			continue
		}
		if !errors.Is(err, ErrInvalidAtlasShape) {
			t.Fatalf("%dx%d: Decode() error = %v, want ErrInvalidAtlasShape", w, h, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.pbm")
	if err := os.WriteFile(path, buildPBM(64, 6, func(x, y int) bool { return x == y }), 0o644); err != nil {
		t.Fatal(err)
	}
	a, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if a.GlyphWidth() != 2 || a.GlyphHeight() != 2 {
		t.Errorf("glyph size = %dx%d, want 2x2", a.GlyphWidth(), a.GlyphHeight())
	}

	if _, err := Load(filepath.Join(dir, "missing.pbm")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.pbm")
	if err := os.WriteFile(bad, []byte("P1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrBadMagic) {
		t.Errorf("Load() error = %v, want ErrBadMagic", err)
	}
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte("P4\n32 3\n" + string(make([]byte, 12))))
	f.Add([]byte("P4\n# c\n64 6\n"))
	f.Add([]byte("P4 4294967296 3\n"))
	f.Add(defaultAtlas)

	f.Fuzz(func(t *testing.T, data []byte) {
		a, err := Decode(data)
		if err != nil {
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not a *FormatError", err)
			}
			return
		}
		for c := rune(FirstChar); c <= LastChar; c++ {
			if g, ok := a.Glyph(c); !ok || len(g) != a.GlyphWidth()*a.GlyphHeight() {
				t.Fatalf("Glyph(%q) malformed", c)
			}
		}
	})
}
