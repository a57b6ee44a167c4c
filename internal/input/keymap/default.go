package keymap

// Default returns the built-in Emacs-style picker bindings.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			// Closing
			{Keys: "Escape", Action: ActionClose, Description: "Close without output"},
			{Keys: "Ctrl+C", Action: ActionClose, Description: "Close without output"},
			{Keys: "Enter", Action: ActionAccept, Description: "Print the selection and exit"},

			// Selection
			{Keys: "Ctrl+N", Action: ActionNext, Description: "Select next match"},
			{Keys: "Down", Action: ActionNext, Description: "Select next match"},
			{Keys: "Tab", Action: ActionNext, Description: "Select next match"},
			{Keys: "Ctrl+P", Action: ActionPrev, Description: "Select previous match"},
			{Keys: "Up", Action: ActionPrev, Description: "Select previous match"},
			{Keys: "Shift+Tab", Action: ActionPrev, Description: "Select previous match"},
			{Keys: "PageDown", Action: ActionPageDown, Description: "Select one page down"},
			{Keys: "PageUp", Action: ActionPageUp, Description: "Select one page up"},

			// Query editing
			{Keys: "Backspace", Action: ActionDeleteChar, Description: "Delete character before cursor"},
			{Keys: "Ctrl+H", Action: ActionDeleteChar, Description: "Delete character before cursor"},
			{Keys: "Ctrl+W", Action: ActionDeleteWord, Description: "Delete word before cursor"},
			{Keys: "Ctrl+U", Action: ActionDeleteToStart, Description: "Delete to start of query"},
			{Keys: "Ctrl+K", Action: ActionDeleteToEnd, Description: "Delete to end of query"},
			{Keys: "Ctrl+L", Action: ActionClear, Description: "Clear the query"},

			// Cursor
			{Keys: "Ctrl+A", Action: ActionCursorStart, Description: "Move to start of query"},
			{Keys: "Home", Action: ActionCursorStart, Description: "Move to start of query"},
			{Keys: "Ctrl+E", Action: ActionCursorEnd, Description: "Move to end of query"},
			{Keys: "End", Action: ActionCursorEnd, Description: "Move to end of query"},
			{Keys: "Left", Action: ActionCursorLeft, Description: "Move cursor left"},
			{Keys: "Ctrl+B", Action: ActionCursorLeft, Description: "Move cursor left"},
			{Keys: "Right", Action: ActionCursorRight, Description: "Move cursor right"},
			{Keys: "Ctrl+F", Action: ActionCursorRight, Description: "Move cursor right"},
		},
	}
}
