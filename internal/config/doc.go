// Package config provides the configuration system for glyphmenu.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Arguments  │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← GLYPHMENU_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/glyphmenu/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be YAML (.yaml, .yml) or TOML (.toml); the format
// is chosen by extension. Unknown keys are rejected so that typos do not
// silently fall back to defaults. Command line flags are applied by the
// caller through Set.
//
// # Sub-packages
//
//   - loader: file decoding (YAML, TOML) and environment variables
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.NewLoader().Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Set("prompt", "run: "); err != nil {
//	    return err
//	}
package config
