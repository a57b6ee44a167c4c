package key

import (
	"fmt"
	"strings"
	"unicode"
)

// EventType distinguishes key presses from window state changes.
type EventType uint8

const (
	// EventKey is a key press.
	EventKey EventType = iota

	// EventFocus reports that the surface gained or lost keyboard focus.
	EventFocus

	// EventResize reports that the surface changed size.
	EventResize
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventFocus:
		return "focus"
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Event is a single decoded input event.
type Event struct {
	// Type selects which of the fields below are meaningful.
	Type EventType

	// Focused is the new focus state for EventFocus.
	Focused bool

	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Text is the text the key press produced, if any.
	Text string

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	ev := Event{Type: EventKey, Key: KeyRune, Rune: r, Modifiers: mods}
	if mods&(ModCtrl|ModAlt|ModMeta) == 0 {
		ev.Text = string(r)
	}
	return ev
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Type: EventKey, Key: key, Modifiers: mods}
}

// NewFocusEvent creates a focus change event.
func NewFocusEvent(focused bool) Event {
	return Event{Type: EventFocus, Focused: focused}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Type == EventKey && e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if a command modifier is pressed.
// Shift alone is not a command modifier since it changes the character.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
}

// Chord is the normalized identity of a key press. Two events that should
// trigger the same binding have equal chords.
type Chord struct {
	Key  Key
	Rune rune
	Mods Modifier
}

// Chord returns the binding identity of the event. Control combinations
// fold the rune to lower case and Shift is dropped for characters, since
// the terminal and the parser disagree on how they are reported.
func (e Event) Chord() Chord {
	c := Chord{Key: e.Key, Rune: e.Rune, Mods: e.Modifiers}
	if e.Key != KeyRune {
		c.Rune = 0
		return c
	}
	c.Mods = c.Mods.Without(ModShift)
	if c.Mods.Has(ModCtrl) {
		c.Rune = unicode.ToLower(c.Rune)
	}
	return c
}

// String returns a canonical string representation that Parse accepts.
// Examples: "a", "Ctrl+W", "Enter", "Alt+Shift+Left"
func (e Event) String() string {
	switch e.Type {
	case EventFocus:
		if e.Focused {
			return "FocusIn"
		}
		return "FocusOut"
	case EventResize:
		return "Resize"
	}

	var name string
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	} else {
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.Key == KeyRune {
		mods = mods.Without(ModShift)
	}
	if mods == ModNone {
		return name
	}
	return strings.Join([]string{mods.String(), name}, "+")
}

// Equals returns true if two events trigger the same binding.
func (e Event) Equals(other Event) bool {
	return e.Type == other.Type && e.Chord() == other.Chord()
}
