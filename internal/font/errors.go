package font

import (
	"errors"
	"fmt"
)

// Atlas decoding errors. A *FormatError wraps exactly one of these, so
// callers can test the failure kind with errors.Is.
var (
	// ErrBadMagic indicates the data does not start with the P4 magic token.
	ErrBadMagic = errors.New("bad magic")

	// ErrBadDimensions indicates the image width or height is missing or
	// not a positive decimal integer.
	ErrBadDimensions = errors.New("bad dimensions")

	// ErrInvalidAtlasShape indicates the image cannot be divided into a
	// 32x3 grid of equally sized glyph cells.
	ErrInvalidAtlasShape = errors.New("invalid atlas shape")

	// ErrTruncatedBitmap indicates the raster holds fewer bytes than the
	// header promises.
	ErrTruncatedBitmap = errors.New("truncated bitmap")
)

// FormatError describes why an atlas could not be decoded.
type FormatError struct {
	// Kind is one of the Err* sentinels above.
	Kind error
	// Offset is the byte offset in the input where decoding stopped.
	Offset int
	// Detail is a human-readable explanation.
	Detail string
}

func formatError(kind error, offset int, format string, args ...any) *FormatError {
	return &FormatError{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("font atlas: %v at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("font atlas: %v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// Unwrap returns the failure kind.
func (e *FormatError) Unwrap() error {
	return e.Kind
}
