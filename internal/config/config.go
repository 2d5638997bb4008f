// ABOUTME: Configuration for jot storage and sync settings.
// ABOUTME: Reads YAML from the XDG config directory and falls back to defaults.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/harper/jot/internal/storage"
	"gopkg.in/yaml.v3"
)

// Config holds user settings.
type Config struct {
	// Backend is one of storage.Kinds (default: file).
	Backend string `yaml:"backend"`

	// DataDir is where local backends keep their files.
	DataDir string `yaml:"data_dir,omitempty"`

	// Async makes writes complete in the background.
	Async bool `yaml:"async"`

	// CharmHost is the charm server for the charm backend.
	CharmHost string `yaml:"charm_host,omitempty"`

	// AutoSync syncs the charm backend after every write (default: true).
	AutoSync bool `yaml:"auto_sync"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:  storage.KindFile,
		DataDir:  DefaultDataDir(),
		AutoSync: true,
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "jot")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultDataDir returns the XDG data directory for jot.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "jot")
}

// LoadConfig loads the config at path, or ConfigPath when path is empty.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // config path is user-chosen
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend name.
func (c *Config) Validate() error {
	if !slices.Contains(storage.Kinds, c.Backend) {
		return fmt.Errorf("%w: %q", storage.ErrUnknownBackend, c.Backend)
	}
	return nil
}

// SaveConfig writes cfg to path, or ConfigPath when path is empty.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// StorageOptions translates the config into backend options.
func (c *Config) StorageOptions(onError func(error)) storage.Options {
	return storage.Options{
		Kind:      c.Backend,
		DataDir:   c.DataDir,
		CharmHost: c.CharmHost,
		AutoSync:  c.AutoSync,
		Async:     c.Async,
		OnError:   onError,
	}
}
