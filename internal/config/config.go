// Package config holds atomkv configuration: where the store file lives,
// the default debounce window, and logging settings. Configuration is read
// from a YAML file with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all atomkv configuration.
type Config struct {
	// Store settings
	Store StoreConfig `yaml:"store"`

	// Atom bridge settings
	Atom AtomConfig `yaml:"atom"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig configures the embedded key-value engine.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// AtomConfig configures the atom bridge defaults.
type AtomConfig struct {
	// Default trailing-edge debounce window, e.g. "250ms"
	DebounceDelay string `yaml:"debounce_delay"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug bool   `yaml:"debug"` // when false, no log files are written
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // directory holding logs/
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "data/atomkv.db",
		},
		Atom: AtomConfig{
			DebounceDelay: "250ms",
		},
		Logging: LoggingConfig{
			Debug: false,
			Level: "info",
			Dir:   "data",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DebounceDelay parses the configured debounce window.
func (c *Config) DebounceDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Atom.DebounceDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce_delay %q: %w", c.Atom.DebounceDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("debounce_delay must not be negative: %s", c.Atom.DebounceDelay)
	}
	return d, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("ATOMKV_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if delay := os.Getenv("ATOMKV_DEBOUNCE"); delay != "" {
		c.Atom.DebounceDelay = delay
	}
	if debug := os.Getenv("ATOMKV_DEBUG"); debug != "" {
		if v, err := strconv.ParseBool(debug); err == nil {
			c.Logging.Debug = v
		}
	}
	if level := os.Getenv("ATOMKV_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}
