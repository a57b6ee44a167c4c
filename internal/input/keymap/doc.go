// Package keymap maps key presses to picker actions.
//
// The keymap system manages the mapping between key chords and named
// actions. Keymaps are layered: the built-in defaults are registered
// first and user keymaps from configuration override them chord by chord.
//
// # Key Concepts
//
// Keymap: A named collection of bindings from one source.
//
// Binding: Maps a key specification to an action.
//
// Registry: Resolves the layered keymaps into a single chord table.
//
// # Unbinding
//
// A user binding with the action "none" removes the default binding for
// that chord.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := registry.Register(keymap.Default()); err != nil {
//	    return err
//	}
//	action, ok := registry.Lookup(event)
package keymap
