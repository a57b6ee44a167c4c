// Package key provides the decoded input events delivered to the picker.
//
// This package defines the types the host produces and the keymap consumes:
//
//   - Key: identifies a special key, or KeyRune for characters
//   - Modifier: Ctrl, Alt, Shift and Meta (the logo key)
//   - Event: a key press or a focus change
//   - Chord: the normalized identity of a key press used for binding lookup
//
// # Key Specifications
//
// Bindings are written as specification strings:
//
//   - Simple keys: "a", "Enter", "Escape", "Down"
//   - With modifiers: "Ctrl+W", "Alt+B", "Ctrl+Shift+P"
//   - Vim-style: "<C-w>", "<A-b>", "<CR>", "<Esc>"
package key
