package keymap

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dshills/glyphmenu/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "Ctrl+W", "<C-w>", "Down", "Enter"
	Keys string

	// Action is the command to execute.
	Action Action

	// Description provides documentation for the binding.
	Description string
}

// Keymap holds key bindings from one source.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Source indicates where this keymap was defined.
	// Examples: "default", "user"
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys string, action Action) *Keymap {
	k.Bindings = append(k.Bindings, Binding{
		Keys:   keys,
		Action: action,
	})
	return k
}

// FromMap builds a keymap from a key specification to action name table,
// as found in configuration files. Bindings are ordered by key
// specification so that errors are reported deterministically.
func FromMap(name string, bindings map[string]string) *Keymap {
	km := NewKeymap(name).WithSource("user")
	for _, keys := range slices.Sorted(maps.Keys(bindings)) {
		km.Add(keys, Action(bindings[keys]))
	}
	return km
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

type parsedBinding struct {
	Binding
	chord key.Chord
}

func (k *Keymap) parse() ([]parsedBinding, error) {
	parsed := make([]parsedBinding, 0, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if !b.Action.Valid() {
			return nil, fmt.Errorf("binding %d (%s): %w: %q", i, b.Keys, ErrUnknownAction, b.Action)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed = append(parsed, parsedBinding{Binding: b, chord: ev.Chord()})
	}
	return parsed, nil
}
