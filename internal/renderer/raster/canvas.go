package raster

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the size of one ARGB pixel.
const BytesPerPixel = 4

// ErrBufferSize is returned when a buffer does not match its dimensions.
var ErrBufferSize = errors.New("pixel buffer size mismatch")

// Canvas is a view over a caller-owned ARGB pixel buffer.
type Canvas struct {
	pix    []byte
	width  int
	height int
}

// NewCanvas wraps pix as a width x height canvas. pix must hold at least
// width*height*4 bytes; extra bytes are left untouched.
func NewCanvas(pix []byte, width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBufferSize, width, height)
	}
	if need := width * height * BytesPerPixel; len(pix) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrBufferSize, len(pix), need)
	}
	return &Canvas{pix: pix, width: width, height: height}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Pix returns the underlying buffer.
func (c *Canvas) Pix() []byte { return c.pix }

// Set writes one pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.put((y*c.width+x)*BytesPerPixel, col)
}

// At reads one pixel. Coordinates outside the canvas read as zero.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Color{}
	}
	i := (y*c.width + x) * BytesPerPixel
	return Color{B: c.pix[i], G: c.pix[i+1], R: c.pix[i+2], A: c.pix[i+3]}
}

// FillRect fills the rectangle at (x, y) of size w x h, clipped to the
// canvas.
func (c *Canvas) FillRect(x, y, w, h int, col Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width), min(y+h, c.height)
	for py := y0; py < y1; py++ {
		row := py * c.width
		for px := x0; px < x1; px++ {
			c.put((row+px)*BytesPerPixel, col)
		}
	}
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col Color) {
	c.FillRect(0, 0, c.width, c.height, col)
}

func (c *Canvas) put(i int, col Color) {
	c.pix[i] = col.B
	c.pix[i+1] = col.G
	c.pix[i+2] = col.R
	c.pix[i+3] = col.A
}
