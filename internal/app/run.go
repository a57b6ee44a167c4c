package app

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/dshills/glyphmenu/internal/config/watcher"
	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/renderer/backend"
	"github.com/dshills/glyphmenu/internal/renderer/raster"
)

// Run shows the picker on b until it is accepted or canceled, or ctx is
// done. Input and config changes are handled on the calling goroutine in
// arrival order, and a frame is presented after each one.
func (a *App) Run(ctx context.Context, b backend.Backend) (res Result, err error) {
	if a.running {
		return Result{}, ErrAlreadyRunning
	}
	a.running = true
	defer func() { a.running = false }()

	if err := b.Init(); err != nil {
		return Result{}, NewOperationError("init", "backend", err)
	}
	defer b.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(b, done)

	var (
		watchEvents <-chan watcher.Event
		watchErrors <-chan error
	)
	if a.watcher != nil {
		watchEvents = a.watcher.Events()
		watchErrors = a.watcher.Errors()
	}

	var pix []byte
	if err := a.present(b, &pix); err != nil {
		return Result{}, err
	}
	a.logger.Debug("picker open with %d candidates", a.picker.Options())

	for {
		select {
		case <-ctx.Done():
			a.result = Result{Outcome: OutcomeCanceled}
			return a.result, ctx.Err()

		case ev, ok := <-events:
			if !ok {
				a.result = Result{Outcome: OutcomeCanceled}
				return a.result, nil
			}
			if err := a.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					a.logger.Debug("picker closed: %s", a.result.Outcome)
					return a.result, nil
				}
				return a.result, err
			}

		case wev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			a.reloadFrom(wev)

		case werr, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			a.logger.WithComponent("watcher").Warn("%v", werr)
			continue
		}

		if err := a.present(b, &pix); err != nil && !errors.Is(err, ErrEmptySurface) {
			return a.result, err
		}
	}
}

// pollEvents forwards backend events until the backend shuts down or done
// is closed.
func pollEvents(b backend.Backend, done <-chan struct{}) <-chan key.Event {
	events := make(chan key.Event)
	go func() {
		defer close(events)
		for {
			ev, ok := b.PollEvent()
			if !ok {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// present draws a frame sized to the backend surface. pix is reused
// between frames while the size is unchanged.
func (a *App) present(b backend.Backend, pix *[]byte) error {
	w, h := b.Size()
	if w <= 0 || h <= 0 {
		return ErrEmptySurface
	}
	if need := w * h * raster.BytesPerPixel; len(*pix) != need {
		*pix = make([]byte, need)
	}
	cv, err := raster.NewCanvas(*pix, w, h)
	if err != nil {
		return NewOperationError("present", "frame", err)
	}
	a.Draw(cv)
	b.Present(cv)
	return nil
}

func (a *App) reloadFrom(ev watcher.Event) {
	log := a.logger.WithComponent("config").WithField("path", ev.Path)

	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		log.Info("config %s; keeping current settings", ev.Op)
		return
	}
	if a.loader == nil {
		return
	}
	cfg, err := a.loader.Load(ev.Path)
	if err != nil {
		log.Warn("%v", NewOperationError("reload", "config", err).WithContext(ev.Op.String()))
		return
	}
	if err := a.Reload(cfg); err != nil {
		log.Warn("%v", err)
		return
	}
	log.Info("config reloaded")
}
