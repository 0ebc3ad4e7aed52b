// Package config handles global braindex configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global configuration, loaded from TOML.
type Config struct {
	// Roots are the configured notes roots. The engine requires exactly
	// one active root; configuring several is reported as fatal, not
	// silently merged.
	Roots []string `toml:"roots"`

	// Tasks controls task-board behavior.
	Tasks TasksConfig `toml:"tasks"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// TasksConfig holds task-related preferences.
type TasksConfig struct {
	// SnoozeDefault is the default snooze span for `bdx snooze` when no
	// argument is given, e.g. "1d" or "2w".
	SnoozeDefault string `toml:"snooze_default"`
}

// UIConfig holds optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output: an ANSI code
	// ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// DefaultPath returns the default config file location,
// honoring BRAINDEX_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("BRAINDEX_CONFIG"); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "braindex", "config.toml")
}

// Load reads the config at path (or the default location when path is
// empty). A missing file yields an empty config, not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// StateDir returns the per-corpus sidecar directory holding the task
// store, last-edited stamps, and the shortlink inventory.
func StateDir(root string) string {
	return filepath.Join(root, ".braindex")
}
