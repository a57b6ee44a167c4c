// Package app ties the picker, key bindings and compositor together and
// runs them against a display backend.
package app

import (
	"fmt"

	"github.com/dshills/glyphmenu/internal/config"
	"github.com/dshills/glyphmenu/internal/config/watcher"
	"github.com/dshills/glyphmenu/internal/input/fuzzy"
	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/input/keymap"
	"github.com/dshills/glyphmenu/internal/picker"
	"github.com/dshills/glyphmenu/internal/renderer/raster"
)

// Outcome reports how the picker closed.
type Outcome int

const (
	// OutcomePending means the picker is still open.
	OutcomePending Outcome = iota
	// OutcomeAccepted means a candidate or the raw query was chosen.
	OutcomeAccepted
	// OutcomeCanceled means the picker closed without a choice.
	OutcomeCanceled
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result is the final state of a picker session.
type Result struct {
	Outcome Outcome
	// Text is the accepted candidate, or the query when nothing matched.
	Text string
}

// App holds the picker state for one session.
type App struct {
	cfg        *config.Config
	picker     *picker.Picker
	keys       *keymap.Registry
	compositor *raster.Compositor
	logger     *Logger
	metrics    *Metrics

	watcher *watcher.Watcher
	loader  *config.Loader

	// offset is the first visible rank; rows is the number of candidate
	// rows painted by the last frame.
	offset int
	rows   int

	// dirty is set when the query changed since the last Update.
	dirty bool

	result  Result
	running bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics sets the metrics tracker.
func WithMetrics(m *Metrics) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithWatcher reloads configuration through loader whenever w reports a
// change.
func WithWatcher(w *watcher.Watcher, loader *config.Loader) Option {
	return func(a *App) {
		a.watcher = w
		a.loader = loader
	}
}

// New creates an App over candidates. glyphs supplies the font and scorer
// ranks candidates; a nil scorer selects the default weighted scorer.
func New(cfg *config.Config, glyphs raster.GlyphSource, scorer fuzzy.Scorer, candidates []string, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if glyphs == nil {
		return nil, NewOperationError("create", "app", fmt.Errorf("no glyph source"))
	}

	theme, err := cfg.ParsedTheme()
	if err != nil {
		return nil, NewOperationError("parse", "theme", err)
	}

	keys := keymap.NewRegistry()
	if err := keys.Register(keymap.Default()); err != nil {
		return nil, NewOperationError("register", "default bindings", err)
	}
	if err := keys.Register(cfg.Keymap()); err != nil {
		return nil, NewOperationError("register", "bindings", err)
	}

	a := &App{
		cfg:        cfg.Clone(),
		picker:     picker.New(candidates, scorer),
		keys:       keys,
		compositor: raster.NewCompositor(glyphs, theme, cfg.CursorWidth),
		logger:     NullLogger,
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.picker.Update()
	return a, nil
}

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Picker returns the picker.
func (a *App) Picker() *picker.Picker { return a.picker }

// Metrics returns the metrics tracker.
func (a *App) Metrics() *Metrics { return a.metrics }

// Result returns the session outcome so far.
func (a *App) Result() Result { return a.result }

// HandleEvent applies one input event. It returns ErrQuit once the picker
// has closed; Result then reports the outcome.
func (a *App) HandleEvent(ev key.Event) error {
	timer := StartTimer()
	defer func() { a.metrics.RecordEvent(timer.Elapsed()) }()

	switch ev.Type {
	case key.EventFocus:
		if !ev.Focused && a.cfg.CloseOnUnfocus {
			a.logger.Debug("focus lost")
			return a.cancel()
		}
		return nil
	case key.EventKey:
	default:
		return nil
	}

	if action, ok := a.keys.Lookup(ev); ok {
		return a.Apply(action)
	}
	if ev.Text != "" {
		a.picker.Editor().InsertString(ev.Text)
		a.dirty = true
	}
	return nil
}

// Apply runs a bound action.
func (a *App) Apply(action keymap.Action) error {
	ed := a.picker.Editor()

	switch action {
	case keymap.ActionClose:
		return a.cancel()
	case keymap.ActionAccept:
		return a.accept()

	case keymap.ActionNext:
		a.refresh()
		a.picker.Next()
	case keymap.ActionPrev:
		a.refresh()
		a.picker.Prev()
	case keymap.ActionPageDown:
		a.refresh()
		a.picker.Select(a.picker.Selection() + a.pageSize())
	case keymap.ActionPageUp:
		a.refresh()
		a.picker.Select(a.picker.Selection() - a.pageSize())

	case keymap.ActionDeleteChar:
		ed.DeleteBackward()
		a.dirty = true
	case keymap.ActionDeleteWord:
		ed.DeleteWordBackward()
		a.dirty = true
	case keymap.ActionDeleteToStart:
		ed.DeleteToStart()
		a.dirty = true
	case keymap.ActionDeleteToEnd:
		ed.DeleteToEnd()
		a.dirty = true
	case keymap.ActionClear:
		ed.Clear()
		a.dirty = true

	case keymap.ActionCursorStart:
		ed.MoveToStart()
	case keymap.ActionCursorEnd:
		ed.MoveToEnd()
	case keymap.ActionCursorLeft:
		ed.MoveLeft()
	case keymap.ActionCursorRight:
		ed.MoveRight()

	case keymap.ActionNone:
	default:
		a.logger.Warn("unhandled action %q", action)
	}
	return nil
}

func (a *App) accept() error {
	a.refresh()
	text, ok := a.picker.Selected()
	if !ok {
		text = a.picker.Query()
	}
	a.result = Result{Outcome: OutcomeAccepted, Text: text}
	return ErrQuit
}

func (a *App) cancel() error {
	a.result = Result{Outcome: OutcomeCanceled}
	return ErrQuit
}

// refresh re-ranks the candidates if the query changed since the last
// Update, so selection moves see the current ranking.
func (a *App) refresh() {
	if a.dirty {
		a.picker.Update()
		a.dirty = false
	}
}

func (a *App) pageSize() int {
	switch {
	case a.rows > 0:
		return a.rows
	case a.cfg.Lines > 0:
		return a.cfg.Lines
	default:
		return 1
	}
}

// Draw paints the prompt and query on line 0 and the visible candidates
// below it, with the selection highlighted.
func (a *App) Draw(cv *raster.Canvas) {
	timer := StartTimer()
	a.picker.Update()
	a.dirty = false

	c := a.compositor
	c.Fill(cv)

	ed := a.picker.Editor()
	promptCells := c.PaintLine(cv, 0, 0, a.cfg.Prompt, false)
	c.PaintLine(cv, 0, promptCells, ed.Query(), false)
	if a.cfg.ShowCursor {
		c.PaintCursor(cv, promptCells+ed.Cursor())
	}

	rows := max(c.Lines(cv)-1, 0)
	if a.cfg.Lines > 0 {
		rows = min(rows, a.cfg.Lines)
	}
	a.rows = rows
	a.offset = a.picker.Scroll(a.offset, rows)

	selection := a.picker.Selection()
	for rank, text := range a.picker.Window(a.offset, rows) {
		c.PaintLine(cv, 1+rank-a.offset, 0, text, rank == selection)
	}

	a.metrics.RecordFrame(timer.Elapsed())
}

// Reload applies a new configuration. Theme, prompt, layout, cursor and
// bindings take effect immediately; font and scorer stay as started.
func (a *App) Reload(cfg *config.Config) error {
	theme, err := cfg.ParsedTheme()
	if err != nil {
		return NewOperationError("reload", "theme", err)
	}
	if err := a.keys.Register(cfg.Keymap()); err != nil {
		return NewOperationError("reload", "bindings", err)
	}

	next := cfg.Clone()
	if next.Font != a.cfg.Font || next.Scorer != a.cfg.Scorer {
		a.logger.Warn("font and scorer changes apply on next start")
		next.Font = a.cfg.Font
		next.Scorer = a.cfg.Scorer
	}

	a.compositor.SetTheme(theme)
	a.compositor.SetCursorWidth(next.CursorWidth)
	a.logger.SetLevel(ParseLogLevel(next.Log.Level))
	a.cfg = next
	a.metrics.RecordReload()
	return nil
}
