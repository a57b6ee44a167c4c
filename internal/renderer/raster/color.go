package raster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned for malformed color strings.
var ErrInvalidColor = errors.New("invalid color")

// Color is an 8-bit per channel ARGB color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack = Color{A: 255}
	ColorWhite = Color{R: 255, G: 255, B: 255, A: 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	alpha := uint8(255)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = uint8(a)
		hex = hex[:6]
	}
	if len(hex) != 3 && len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: %q: bad length", ErrInvalidColor, s)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// ARGB returns the color packed as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String returns the color as "#RRGGBB", with an alpha suffix when not
// opaque.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Blend returns the color t of the way from c to other, 0 <= t <= 1.
// Channels are interpolated in sRGB space.
func (c Color) Blend(other Color, t float64) Color {
	t = min(max(t, 0), 1)
	r, g, b := c.colorful().BlendRgb(other.colorful(), t).Clamped().RGB255()
	a := float64(c.A) + (float64(other.A)-float64(c.A))*t
	return Color{R: r, G: g, B: b, A: uint8(a + 0.5)}
}

// Theme holds the colors the compositor paints with.
type Theme struct {
	Background Color
	Foreground Color
	Cursor     Color
}

// DefaultTheme returns white text on black with a white cursor.
func DefaultTheme() Theme {
	return Theme{
		Background: ColorBlack,
		Foreground: ColorWhite,
		Cursor:     ColorWhite,
	}
}

// ParseTheme parses the three theme colors.
func ParseTheme(background, foreground, cursor string) (Theme, error) {
	var t Theme
	var err error
	if t.Background, err = ParseColor(background); err != nil {
		return Theme{}, fmt.Errorf("background: %w", err)
	}
	if t.Foreground, err = ParseColor(foreground); err != nil {
		return Theme{}, fmt.Errorf("foreground: %w", err)
	}
	if t.Cursor, err = ParseColor(cursor); err != nil {
		return Theme{}, fmt.Errorf("cursor: %w", err)
	}
	return t, nil
}

// palette maps a glyph sample to a color.
type palette [256]Color

func newPalette(bg, fg Color) *palette {
	var p palette
	p[0] = bg
	p[255] = fg
	for i := 1; i < 255; i++ {
		p[i] = bg.Blend(fg, float64(i)/255)
	}
	return &p
}
