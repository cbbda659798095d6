// Package config loads the lorekeep configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the process-level settings. Paths default to per-user data
// locations; the config file overrides them.
type Config struct {
	Database   string `yaml:"database"`
	Images     string `yaml:"images"`
	Format     string `yaml:"format"`
	AutosaveMS int    `yaml:"autosave_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Database:   filepath.Join(dataDir, "lorekeep.db"),
		Images:     filepath.Join(dataDir, "images"),
		Format:     "text",
		AutosaveMS: 500,
	}
}

// Load reads a yaml config file, overlaying it on the defaults. A missing
// file is not an error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is the standard config file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lorekeep", "config.yaml")
	}
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Autosave returns the debounce window as a duration.
func (c Config) Autosave() time.Duration {
	return time.Duration(c.AutosaveMS) * time.Millisecond
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "lorekeep")
}
