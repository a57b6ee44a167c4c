package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/renderer/raster"
)

// halfBlock paints the upper pixel of a cell in the foreground color and
// the lower pixel in the background color.
const halfBlock = '▀'

// Terminal implements Backend on a tcell screen. Each cell holds two
// vertically stacked pixels, so the surface is columns x rows*2.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cols, rows := t.screen.Size()
	return cols, rows * 2
}

func (t *Terminal) Present(cv *raster.Canvas) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cv == nil {
		return
	}
	cols, rows := t.screen.Size()
	for row := 0; row < rows && row*2 < cv.Height(); row++ {
		for col := 0; col < cols && col < cv.Width(); col++ {
			top := cv.At(col, row*2)
			bottom := cv.At(col, row*2+1)
			//nolint:staticcheck // SetContent is the cell API used throughout
			t.screen.SetContent(col, row, halfBlock, nil, cellStyle(top, bottom))
		}
	}
	t.screen.Show()
}

func (t *Terminal) PollEvent() (key.Event, bool) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return key.Event{}, false
		}
		if out, ok := convertEvent(ev); ok {
			return out, true
		}
	}
}

func (t *Terminal) PostEvent(ev key.Event) {
	var te tcell.Event
	switch ev.Type {
	case key.EventKey:
		te = tcell.NewEventKey(convertToTcellKey(ev), ev.Rune, convertToTcellMod(ev.Modifiers))
	case key.EventFocus:
		te = tcell.NewEventFocus(ev.Focused)
	case key.EventResize:
		cols, rows := t.screen.Size()
		te = tcell.NewEventResize(cols, rows)
	default:
		return
	}
	_ = t.screen.PostEvent(te)
}

// cellStyle builds the style for a half-block cell.
func cellStyle(top, bottom raster.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(top)).
		Background(tcellColor(bottom))
}

func tcellColor(c raster.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts a tcell event. Events the picker has no use for
// report false.
func convertEvent(ev tcell.Event) (key.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e)
	case *tcell.EventResize:
		return key.Event{Type: key.EventResize}, true
	case *tcell.EventFocus:
		return key.NewFocusEvent(e.Focused), true
	default:
		return key.Event{}, false
	}
}

// convertKeyEvent maps a tcell key event. The named control keys share
// codes with Ctrl+letter and are matched first.
func convertKeyEvent(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch k {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods), true
	case tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods|key.ModShift), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods), true
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods), true
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods|key.ModCtrl), true
	}
	if k == tcell.KeyCtrlSpace {
		return key.NewRuneEvent(' ', mods|key.ModCtrl), true
	}
	return key.Event{}, false
}

func convertToTcellKey(ev key.Event) tcell.Key {
	switch ev.Key {
	case key.KeyEnter:
		return tcell.KeyEnter
	case key.KeyTab:
		if ev.Modifiers.Has(key.ModShift) {
			return tcell.KeyBacktab
		}
		return tcell.KeyTab
	case key.KeyBackspace:
		return tcell.KeyBackspace2
	case key.KeyEscape:
		return tcell.KeyEscape
	case key.KeyDelete:
		return tcell.KeyDelete
	case key.KeyHome:
		return tcell.KeyHome
	case key.KeyEnd:
		return tcell.KeyEnd
	case key.KeyPageUp:
		return tcell.KeyPgUp
	case key.KeyPageDown:
		return tcell.KeyPgDn
	case key.KeyUp:
		return tcell.KeyUp
	case key.KeyDown:
		return tcell.KeyDown
	case key.KeyLeft:
		return tcell.KeyLeft
	case key.KeyRight:
		return tcell.KeyRight
	default:
		return tcell.KeyRune
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}

func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var mods tcell.ModMask
	if m.Has(key.ModShift) {
		mods |= tcell.ModShift
	}
	if m.Has(key.ModCtrl) {
		mods |= tcell.ModCtrl
	}
	if m.Has(key.ModAlt) {
		mods |= tcell.ModAlt
	}
	if m.Has(key.ModMeta) {
		mods |= tcell.ModMeta
	}
	return mods
}

// Ensure interface compliance.
var (
	_ Backend = (*Terminal)(nil)
	_ Backend = (*NullBackend)(nil)
)
