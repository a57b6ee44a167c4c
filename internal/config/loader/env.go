package loader

import (
	"os"
	"sort"
	"strings"
)

// Setting is one key and value read from the environment.
type Setting struct {
	Env   string
	Key   string
	Value string
}

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "GLYPHMENU_")
	mapping map[string]string // Env var -> setting key
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader reading one variable per setting key.
// With prefix "GLYPHMENU_" the key "theme.background" is read from
// GLYPHMENU_THEME_BACKGROUND.
func NewEnvLoader(prefix string, keys []string) *EnvLoader {
	mapping := make(map[string]string, len(keys))
	for _, k := range keys {
		mapping[EnvName(prefix, k)] = k
	}
	return NewEnvLoaderWithMapping(prefix, mapping)
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// EnvName converts a setting key to its environment variable name.
func EnvName(prefix, key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return prefix + strings.ToUpper(r.Replace(key))
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, key string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = key
}

// Load returns the settings present in the environment, ordered by
// variable name.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() []Setting {
	var out []Setting
	for env, key := range l.mapping {
		if val, ok := l.lookup(env); ok {
			out = append(out, Setting{Env: env, Key: key, Value: val})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Env < out[j].Env })
	return out
}
