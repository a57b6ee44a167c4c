// Package font decodes bitmap font atlases.
//
// An atlas is a single binary PBM (P4) image holding the 96 glyphs of the
// printable ASCII range laid out as 32 columns by 3 rows, starting at space
// (0x20) in the top-left cell:
//
//	row 0: 0x20 ' ' .. 0x3F '?'
//	row 1: 0x40 '@' .. 0x5F '_'
//	row 2: 0x60 '`' .. 0x7F DEL
//
// The glyph cell size is derived from the image size: an image of W x H
// pixels yields glyphs of W/32 x H/3 pixels. Each decoded glyph is a
// row-major grid of intensity samples where 0 is background and 255 is
// foreground.
//
// # Usage
//
//	atlas, err := font.Load("terminus.pbm")
//	if err != nil {
//	    return err
//	}
//	grid, ok := atlas.Glyph('A')
//
// An 8x8 atlas is embedded and available through Default.
package font
