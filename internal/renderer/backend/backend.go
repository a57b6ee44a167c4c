// Package backend provides display backends that present a raster canvas
// and deliver input events.
package backend

import (
	"sync"

	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/renderer/raster"
)

// Backend defines the interface for display backends.
// Implementations present pixel frames and report input.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A blocked PollEvent returns false once Shutdown is called.
	Shutdown()

	// Size returns the current surface dimensions in pixels.
	Size() (width, height int)

	// Present copies a frame to the display. Pixels outside the surface
	// are ignored.
	Present(cv *raster.Canvas)

	// PollEvent blocks until the next event. It returns false after
	// Shutdown.
	PollEvent() (key.Event, bool)

	// PostEvent injects an event into the queue.
	PostEvent(ev key.Event)
}

// NullBackend is a Backend that keeps frames in memory.
// Useful for testing.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	frame  []byte
	frames int
	closed bool
	events chan key.Event
}

// NewNullBackend creates a null backend with the given pixel dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan key.Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frame = make([]byte, b.width*b.height*raster.BytesPerPixel)
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.events)
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.width, b.height
}

func (b *NullBackend) Present(cv *raster.Canvas) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.frame) != b.width*b.height*raster.BytesPerPixel {
		b.frame = make([]byte, b.width*b.height*raster.BytesPerPixel)
	}
	forEachPixel(cv, b.width, b.height, func(x, y int, c raster.Color) {
		i := (y*b.width + x) * raster.BytesPerPixel
		b.frame[i] = c.B
		b.frame[i+1] = c.G
		b.frame[i+2] = c.R
		b.frame[i+3] = c.A
	})
	b.frames++
}

func (b *NullBackend) PollEvent() (key.Event, bool) {
	ev, ok := <-b.events
	return ev, ok
}

func (b *NullBackend) PostEvent(ev key.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	select {
	case b.events <- ev:
	default:
		// Drop if buffer full
	}
}

// Resize changes the surface size and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.frame = make([]byte, width*height*raster.BytesPerPixel)
	b.mu.Unlock()

	b.PostEvent(key.Event{Type: key.EventResize})
}

// Frames returns how many frames have been presented.
func (b *NullBackend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.frames
}

// At returns a pixel of the last presented frame.
func (b *NullBackend) At(x, y int) raster.Color {
	b.mu.Lock()
	defer b.mu.Unlock()

	if x < 0 || y < 0 || x >= b.width || y >= b.height || len(b.frame) == 0 {
		return raster.Color{}
	}
	i := (y*b.width + x) * raster.BytesPerPixel
	return raster.Color{B: b.frame[i], G: b.frame[i+1], R: b.frame[i+2], A: b.frame[i+3]}
}

// forEachPixel visits the pixels of cv that fall inside a width x height
// surface.
func forEachPixel(cv *raster.Canvas, width, height int, fn func(x, y int, c raster.Color)) {
	if cv == nil {
		return
	}
	w := min(cv.Width(), width)
	h := min(cv.Height(), height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fn(x, y, cv.At(x, y))
		}
	}
}
