// Package raster paints picker state into a caller-owned pixel buffer.
//
// The buffer is 32-bit ARGB stored little-endian, so each pixel occupies
// four bytes in the order B, G, R, A. The package never allocates or
// resizes the buffer; it is borrowed for the duration of one paint call.
//
// Text is laid out on a fixed grid of glyph cells. Line n starts at
// y = n*GlyphHeight and column c starts at x = c*GlyphWidth. Glyph
// intensities (0 to 255) are mapped through a 256 entry palette blended
// between the theme background and foreground, so an atlas with only
// 0 and 255 samples paints exactly the two theme colors.
package raster
