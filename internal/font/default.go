package font

import (
	_ "embed"
	"sync"
)

// defaultAtlas is an 8x8 ASCII face, 256x24 pixels.
//
//go:embed assets/default.pbm
var defaultAtlas []byte

var (
	defaultOnce sync.Once
	defaultFace *Atlas
	defaultErr  error
)

// Default returns the embedded 8x8 atlas. It is decoded on first use and
// shared afterwards.
func Default() (*Atlas, error) {
	defaultOnce.Do(func() {
		defaultFace, defaultErr = Decode(defaultAtlas)
	})
	return defaultFace, defaultErr
}
