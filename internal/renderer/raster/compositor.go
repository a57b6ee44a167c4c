package raster

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// GlyphSource supplies fixed-size glyph intensity grids.
type GlyphSource interface {
	GlyphWidth() int
	GlyphHeight() int
	// Glyph returns a row-major grid of GlyphWidth*GlyphHeight samples,
	// or false when the character has no glyph.
	Glyph(ch rune) ([]byte, bool)
}

// Compositor paints text lines and the cursor onto a Canvas.
type Compositor struct {
	glyphs      GlyphSource
	theme       Theme
	palette     *palette
	cursorWidth int
	blank       []byte
}

// NewCompositor creates a compositor drawing glyphs from src.
// A cursorWidth below 1 is treated as 1.
func NewCompositor(src GlyphSource, theme Theme, cursorWidth int) *Compositor {
	c := &Compositor{
		glyphs:      src,
		cursorWidth: max(cursorWidth, 1),
		blank:       make([]byte, src.GlyphWidth()*src.GlyphHeight()),
	}
	c.SetTheme(theme)
	return c
}

// SetTheme replaces the theme and rebuilds the sample palette. The
// background alpha is forced opaque; the surface behind it is never shown.
func (c *Compositor) SetTheme(theme Theme) {
	theme.Background.A = 255
	c.theme = theme
	c.palette = newPalette(theme.Background, theme.Foreground)
}

// Theme returns the current theme.
func (c *Compositor) Theme() Theme { return c.theme }

// SetCursorWidth changes the cursor bar width. Values below 1 become 1.
func (c *Compositor) SetCursorWidth(w int) {
	c.cursorWidth = max(w, 1)
}

// CellWidth returns the width of one text cell in pixels.
func (c *Compositor) CellWidth() int { return c.glyphs.GlyphWidth() }

// CellHeight returns the height of one text line in pixels.
func (c *Compositor) CellHeight() int { return c.glyphs.GlyphHeight() }

// Columns returns how many whole cells fit across the canvas.
func (c *Compositor) Columns(cv *Canvas) int {
	return cv.Width() / c.CellWidth()
}

// Lines returns how many whole lines fit down the canvas.
func (c *Compositor) Lines(cv *Canvas) int {
	return cv.Height() / c.CellHeight()
}

// Fill paints the whole canvas with the theme background.
func (c *Compositor) Fill(cv *Canvas) {
	cv.Fill(c.theme.Background)
}

// PaintLine draws text on the given line starting at column col0. Each
// grapheme cluster occupies one cell and is drawn with the glyph of its
// first rune. A cluster with no glyph is drawn as a blank cell so that
// the rest of the line keeps its alignment. Highlighted text is drawn
// with inverted samples. Pixels outside the canvas are clipped.
//
// PaintLine returns the number of cells the text occupies.
func (c *Compositor) PaintLine(cv *Canvas, line, col0 int, text string, highlighted bool) int {
	gw, gh := c.glyphs.GlyphWidth(), c.glyphs.GlyphHeight()
	y0 := line * gh
	if y0 >= cv.Height() || y0+gh <= 0 {
		return uniseg.GraphemeClusterCount(text)
	}

	cells := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		r, _ := utf8.DecodeRuneInString(cluster)

		glyph, ok := c.glyphs.Glyph(r)
		if !ok {
			glyph = c.blank
		}
		c.blit(cv, (col0+cells)*gw, y0, glyph, highlighted)
		cells++
	}
	return cells
}

func (c *Compositor) blit(cv *Canvas, x0, y0 int, glyph []byte, highlighted bool) {
	gw, gh := c.glyphs.GlyphWidth(), c.glyphs.GlyphHeight()
	if x0 >= cv.Width() || x0+gw <= 0 {
		return
	}
	for y := range gh {
		row := glyph[y*gw : (y+1)*gw]
		for x, v := range row {
			if highlighted {
				v = 255 - v
			}
			cv.Set(x0+x, y0+y, c.palette[v])
		}
	}
}

// PaintCursor draws the cursor bar at column col of line 0.
func (c *Compositor) PaintCursor(cv *Canvas, col int) {
	cv.FillRect(col*c.glyphs.GlyphWidth(), 0, c.cursorWidth, c.glyphs.GlyphHeight(), c.theme.Cursor)
}
