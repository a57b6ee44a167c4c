package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/dshills/glyphmenu/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GLYPHMENU_"

// Loader builds a Config from defaults, a file, the environment and
// command-line overrides, in that order.
type Loader struct {
	files     *loader.FileLoader
	env       *loader.EnvLoader
	overrides map[string]string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads config files through fsys.
func WithFileSystem(fsys loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.files = loader.NewFileLoaderWithFS(fsys)
	}
}

// WithEnv replaces the environment loader. A nil loader disables
// environment overrides.
func WithEnv(env *loader.EnvLoader) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// WithOverrides applies key/value settings after the environment on every
// Load, so they survive a reload of the file.
func WithOverrides(overrides map[string]string) LoaderOption {
	return func(l *Loader) {
		l.overrides = maps.Clone(overrides)
	}
}

// NewLoader creates a loader reading the OS file system and GLYPHMENU_*
// variables.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		files: loader.NewFileLoader(),
		env:   loader.NewEnvLoader(EnvPrefix, Keys()),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the defaults overlaid with the file at path (skipped when
// path is empty), the environment and then the overrides. The result is
// validated.
//
// Errors are *loader.ParseError for malformed files, *ValidationError for
// bad values, and wrap ErrFileNotFound when path does not exist.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := l.files.LoadInto(path, cfg); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return nil, err
		}
	}

	if l.env != nil {
		for _, s := range l.env.Load() {
			if err := cfg.Set(s.Key, s.Value); err != nil {
				return nil, fmt.Errorf("%s: %w", s.Env, err)
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(l.overrides)) {
		if err := cfg.Set(key, l.overrides[key]); err != nil {
			return nil, fmt.Errorf("override %s: %w", key, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
