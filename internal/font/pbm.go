package font

import "strconv"

const (
	// pbmMagic identifies the raw (binary) portable bitmap format.
	pbmMagic = "P4"

	// maxDimension bounds the image size so cell arithmetic cannot overflow.
	maxDimension = 1 << 16
)

// header is the parsed PBM header.
type header struct {
	width  int
	height int
	// raster is the offset of the first bitmap byte.
	raster int
}

// stride returns the number of bytes per bitmap row. Rows are padded to a
// whole byte as in every PBM writer.
func (h header) stride() int {
	return (h.width + 7) / 8
}

// parseHeader reads the magic token and the image dimensions. Comments
// start with '#' and run to the end of the line; exactly one whitespace byte
// separates the height from the raster.
func parseHeader(data []byte) (header, error) {
	if len(data) < len(pbmMagic) || string(data[:len(pbmMagic)]) != pbmMagic {
		return header{}, formatError(ErrBadMagic, 0, "expected %q", pbmMagic)
	}
	pos := len(pbmMagic)
	if pos < len(data) && !isSpace(data[pos]) && data[pos] != '#' {
		return header{}, formatError(ErrBadMagic, 0, "expected %q", pbmMagic)
	}

	names := [2]string{"width", "height"}
	var dims [2]int
	for i, name := range names {
		start, end := nextToken(data, pos)
		if start == end {
			return header{}, formatError(ErrBadDimensions, start, "missing image %s", name)
		}
		n, err := strconv.Atoi(string(data[start:end]))
		if err != nil || n <= 0 {
			return header{}, formatError(ErrBadDimensions, start,
				"image %s %q is not a positive integer", name, data[start:end])
		}
		if n > maxDimension {
			return header{}, formatError(ErrBadDimensions, start,
				"image %s %d exceeds %d", name, n, maxDimension)
		}
		dims[i] = n
		pos = end
	}

	if pos < len(data) {
		// The single separator byte; anything else would have been
		// swallowed into the height token.
		pos++
	}

	return header{width: dims[0], height: dims[1], raster: pos}, nil
}

// nextToken skips whitespace and comments starting at pos and returns the
// bounds of the following token. start == end means no token was found.
func nextToken(data []byte, pos int) (start, end int) {
	for pos < len(data) {
		switch c := data[pos]; {
		case isSpace(c):
			pos++
		case c == '#':
			for pos < len(data) && data[pos] != '\n' {
				pos++
			}
		default:
			start = pos
			for pos < len(data) && !isSpace(data[pos]) && data[pos] != '#' {
				pos++
			}
			return start, pos
		}
	}
	return pos, pos
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// sample returns the intensity of the pixel at (x, y) in a packed,
// MSB-first raster.
func sample(raster []byte, stride, x, y int) byte {
	if raster[y*stride+x/8]&(0x80>>(x%8)) != 0 {
		return 255
	}
	return 0
}
