package font

import (
	"fmt"
	"os"
)

// Atlas layout constants. They are fixed by the printable ASCII range:
// 96 code points starting at space, 32 per row.
const (
	Columns = 32
	Rows    = 3
	Slots   = Columns * Rows

	// FirstChar and LastChar bound the characters Glyph will return.
	FirstChar = ' '
	LastChar  = '~'
)

// Atlas is a decoded glyph table. It is immutable after Decode returns.
type Atlas struct {
	glyphWidth  int
	glyphHeight int

	// cells holds all 96 glyph grids back to back; slot s occupies
	// cells[s*cellSize : (s+1)*cellSize].
	cells []byte
}

// Decode parses a P4 PBM image as a glyph atlas.
func Decode(data []byte) (*Atlas, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	if h.width%Columns != 0 {
		return nil, formatError(ErrInvalidAtlasShape, 0,
			"width %d is not a multiple of %d", h.width, Columns)
	}
	if h.height%Rows != 0 {
		return nil, formatError(ErrInvalidAtlasShape, 0,
			"height %d is not a multiple of %d", h.height, Rows)
	}

	stride := h.stride()
	raster := data[h.raster:]
	if need := stride * h.height; len(raster) < need {
		return nil, formatError(ErrTruncatedBitmap, len(data),
			"need %d raster bytes, have %d", need, len(raster))
	}

	gw, gh := h.width/Columns, h.height/Rows
	a := &Atlas{
		glyphWidth:  gw,
		glyphHeight: gh,
		cells:       make([]byte, Slots*gw*gh),
	}

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			cell := a.cell(row*Columns + col)
			for y := 0; y < gh; y++ {
				for x := 0; x < gw; x++ {
					cell[y*gw+x] = sample(raster, stride, col*gw+x, row*gh+y)
				}
			}
		}
	}

	return a, nil
}

// Load reads and decodes an atlas file.
func Load(path string) (*Atlas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font atlas: %w", err)
	}
	a, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return a, nil
}

// GlyphWidth returns the width of one glyph cell in pixels.
func (a *Atlas) GlyphWidth() int { return a.glyphWidth }

// GlyphHeight returns the height of one glyph cell in pixels.
func (a *Atlas) GlyphHeight() int { return a.glyphHeight }

// Glyph returns the intensity grid for ch, row-major, GlyphWidth*GlyphHeight
// bytes. It reports false for anything outside ' '..'~'. The returned slice
// aliases the atlas and must not be modified.
func (a *Atlas) Glyph(ch rune) ([]byte, bool) {
	if ch < FirstChar || ch > LastChar {
		return nil, false
	}
	row, col := SlotOf(ch)
	return a.cell(row*Columns + col), true
}

// Cell returns the grid stored at (row, col), including the DEL slot that
// Glyph never hands out.
func (a *Atlas) Cell(row, col int) ([]byte, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Columns {
		return nil, false
	}
	return a.cell(row*Columns + col), true
}

func (a *Atlas) cell(slot int) []byte {
	size := a.glyphWidth * a.glyphHeight
	return a.cells[slot*size : (slot+1)*size : (slot+1)*size]
}

// SlotOf returns the atlas position of a code point in 0x20..0x7F.
func SlotOf(ch rune) (row, col int) {
	return int(ch>>5) - 1, int(ch & 0x1F)
}
