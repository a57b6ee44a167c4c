package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/input/keymap"
	"github.com/dshills/glyphmenu/internal/renderer/raster"
)

// Scorer names accepted by the scorer setting. Any other value must be
// the path of a Lua script.
const (
	ScorerDefault = "default"
	ScorerPath    = "path"
)

// Log levels accepted by the log.level setting.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds every glyphmenu setting.
type Config struct {
	// Font is the path of a PBM font atlas. Empty selects the built-in font.
	Font string `yaml:"font" toml:"font"`

	// Prompt is painted before the query.
	Prompt string `yaml:"prompt" toml:"prompt"`

	// Lines is the number of candidate rows shown. Zero fills the surface.
	Lines int `yaml:"lines" toml:"lines"`

	// ShowCursor paints the query cursor.
	ShowCursor bool `yaml:"show_cursor" toml:"show_cursor"`

	// CursorWidth is the cursor bar width in pixels.
	CursorWidth int `yaml:"cursor_width" toml:"cursor_width"`

	// CloseOnUnfocus cancels the picker when the surface loses focus.
	CloseOnUnfocus bool `yaml:"close_on_unfocus" toml:"close_on_unfocus"`

	// Scorer selects the ranking strategy: "default", "path", or the path
	// of a Lua script.
	Scorer string `yaml:"scorer" toml:"scorer"`

	Theme ThemeConfig `yaml:"theme" toml:"theme"`

	// Bindings maps key specifications to action names, on top of the
	// default bindings.
	Bindings map[string]string `yaml:"bindings" toml:"bindings"`

	Log LogConfig `yaml:"log" toml:"log"`
}

// ThemeConfig holds hex color strings.
type ThemeConfig struct {
	Background string `yaml:"background" toml:"background"`
	Foreground string `yaml:"foreground" toml:"foreground"`
	Cursor     string `yaml:"cursor" toml:"cursor"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt:         "",
		Lines:          10,
		ShowCursor:     true,
		CursorWidth:    2,
		CloseOnUnfocus: true,
		Scorer:         ScorerDefault,
		Theme: ThemeConfig{
			Background: "#000000",
			Foreground: "#ffffff",
			Cursor:     "#ffffff",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Bindings = maps.Clone(c.Bindings)
	return &clone
}

// ParsedTheme converts the theme colors.
func (c *Config) ParsedTheme() (raster.Theme, error) {
	return raster.ParseTheme(c.Theme.Background, c.Theme.Foreground, c.Theme.Cursor)
}

// Keymap returns the user bindings as a keymap layer.
func (c *Config) Keymap() *keymap.Keymap {
	return keymap.FromMap("user", c.Bindings)
}

// IsLuaScorer reports whether the scorer setting names a Lua script.
func (c *Config) IsLuaScorer() bool {
	return c.Scorer != ScorerDefault && c.Scorer != ScorerPath
}

// Validate checks every setting and returns the first *ValidationError.
func (c *Config) Validate() error {
	if c.Lines < 0 {
		return &ValidationError{Path: "lines", Message: "must not be negative", Value: c.Lines, Code: ErrCodeOutOfRange}
	}
	if c.CursorWidth < 1 {
		return &ValidationError{Path: "cursor_width", Message: "must be at least 1", Value: c.CursorWidth, Code: ErrCodeOutOfRange}
	}
	if c.Scorer == "" {
		return &ValidationError{Path: "scorer", Message: "must not be empty", Value: c.Scorer, Code: ErrCodeInvalidEnum}
	}
	if c.IsLuaScorer() && !strings.EqualFold(filepath.Ext(c.Scorer), ".lua") {
		return &ValidationError{
			Path:    "scorer",
			Message: fmt.Sprintf("must be %q, %q or a .lua script", ScorerDefault, ScorerPath),
			Value:   c.Scorer,
			Code:    ErrCodeInvalidEnum,
		}
	}

	colors := []struct {
		path, value string
	}{
		{"theme.background", c.Theme.Background},
		{"theme.foreground", c.Theme.Foreground},
		{"theme.cursor", c.Theme.Cursor},
	}
	for _, col := range colors {
		if _, err := raster.ParseColor(col.value); err != nil {
			return &ValidationError{Path: col.path, Message: "invalid color", Value: col.value, Code: ErrCodePatternMismatch}
		}
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return &ValidationError{
			Path:    "log.level",
			Message: "must be one of " + strings.Join(logLevels, ", "),
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		}
	}

	for _, spec := range slices.Sorted(maps.Keys(c.Bindings)) {
		path := "bindings." + spec
		if _, err := key.Parse(spec); err != nil {
			return &ValidationError{Path: path, Message: err.Error(), Value: spec, Code: ErrCodePatternMismatch}
		}
		if action := keymap.Action(c.Bindings[spec]); !action.Valid() {
			return &ValidationError{Path: path, Message: "unknown action", Value: c.Bindings[spec], Code: ErrCodeInvalidEnum}
		}
	}

	return nil
}

// Keys returns every scalar setting key accepted by Set.
func Keys() []string {
	return []string{
		"font", "prompt", "lines", "show_cursor", "cursor_width",
		"close_on_unfocus", "scorer",
		"theme.background", "theme.foreground", "theme.cursor",
		"log.level",
	}
}

// Set assigns a setting from its string form. Keys use the file
// spelling ("theme.background"); "bindings.<spec>" sets one binding.
// The value is converted but not validated; call Validate afterwards.
func (c *Config) Set(key, value string) error {
	switch key {
	case "font":
		c.Font = value
	case "prompt":
		c.Prompt = value
	case "scorer":
		c.Scorer = value
	case "theme.background":
		c.Theme.Background = value
	case "theme.foreground":
		c.Theme.Foreground = value
	case "theme.cursor":
		c.Theme.Cursor = value
	case "log.level":
		c.Log.Level = strings.ToLower(value)
	case "lines":
		return setInt(&c.Lines, key, value)
	case "cursor_width":
		return setInt(&c.CursorWidth, key, value)
	case "show_cursor":
		return setBool(&c.ShowCursor, key, value)
	case "close_on_unfocus":
		return setBool(&c.CloseOnUnfocus, key, value)
	default:
		spec, ok := strings.CutPrefix(key, "bindings.")
		if !ok || spec == "" {
			return &ValidationError{Path: key, Message: "unknown setting", Value: value, Code: ErrCodeUnknownSetting}
		}
		if c.Bindings == nil {
			c.Bindings = make(map[string]string)
		}
		c.Bindings[spec] = value
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return &ValidationError{Path: key, Message: "expected an integer", Value: value, Code: ErrCodeTypeMismatch}
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return &ValidationError{Path: key, Message: "expected a boolean", Value: value, Code: ErrCodeTypeMismatch}
	}
	return nil
}

// DefaultPath returns the first existing config file in the user config
// directory, or "" when there is none.
func DefaultPath() string {
	dir := defaultUserConfigDir()
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "glyphmenu")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "glyphmenu")
}
