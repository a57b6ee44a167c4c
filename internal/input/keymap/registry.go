package keymap

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/glyphmenu/internal/input/key"
)

// ErrUnknownAction is returned for bindings that name no known action.
var ErrUnknownAction = errors.New("unknown action")

// Registry resolves layered keymaps into a chord table.
// Later registrations override earlier ones for the same chord.
type Registry struct {
	// keymaps holds registered keymaps in registration order.
	keymaps []*Keymap

	// table maps chords to the binding that currently owns them.
	table map[key.Chord]Binding
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		table: make(map[key.Chord]Binding),
	}
}

// Register adds a keymap on top of the existing layers.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	if _, err := km.parse(); err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.keymaps = slices.DeleteFunc(r.keymaps, func(k *Keymap) bool {
		return k.Name == km.Name
	})
	r.keymaps = append(r.keymaps, km)
	r.rebuild()
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.keymaps = slices.DeleteFunc(r.keymaps, func(k *Keymap) bool {
		return k.Name == name
	})
	r.rebuild()
}

func (r *Registry) rebuild() {
	clear(r.table)
	for _, km := range r.keymaps {
		// Keymaps are validated on registration.
		parsed, _ := km.parse()
		for _, pb := range parsed {
			if pb.Action == ActionNone {
				delete(r.table, pb.chord)
				continue
			}
			r.table[pb.chord] = pb.Binding
		}
	}
}

// Lookup returns the action bound to a key event.
func (r *Registry) Lookup(ev key.Event) (Action, bool) {
	if ev.Type != key.EventKey {
		return "", false
	}
	b, ok := r.table[ev.Chord()]
	if !ok {
		return "", false
	}
	return b.Action, true
}

// Bindings returns the effective bindings sorted by action then keys.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.table))
	for _, b := range r.table {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return cmp.Or(cmp.Compare(a.Action, b.Action), cmp.Compare(a.Keys, b.Keys))
	})
	return out
}
