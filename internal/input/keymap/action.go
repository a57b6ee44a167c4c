package keymap

import "slices"

// Action names a picker command.
type Action string

// Picker actions.
const (
	ActionNone Action = "none"

	ActionClose  Action = "picker.close"
	ActionAccept Action = "picker.accept"

	ActionNext     Action = "selection.next"
	ActionPrev     Action = "selection.prev"
	ActionPageDown Action = "selection.page-down"
	ActionPageUp   Action = "selection.page-up"

	ActionDeleteChar    Action = "query.delete-char"
	ActionDeleteWord    Action = "query.delete-word"
	ActionDeleteToStart Action = "query.delete-to-start"
	ActionDeleteToEnd   Action = "query.delete-to-end"
	ActionClear         Action = "query.clear"

	ActionCursorStart Action = "cursor.start"
	ActionCursorEnd   Action = "cursor.end"
	ActionCursorLeft  Action = "cursor.left"
	ActionCursorRight Action = "cursor.right"
)

var knownActions = []Action{
	ActionNone,
	ActionClose, ActionAccept,
	ActionNext, ActionPrev, ActionPageDown, ActionPageUp,
	ActionDeleteChar, ActionDeleteWord, ActionDeleteToStart, ActionDeleteToEnd, ActionClear,
	ActionCursorStart, ActionCursorEnd, ActionCursorLeft, ActionCursorRight,
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return slices.Contains(knownActions, a)
}

// Actions returns every known action name.
func Actions() []Action {
	return slices.Clone(knownActions)
}
