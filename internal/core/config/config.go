// Package config handles configuration loading and validation for tasklist.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names accepted by storage.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the supported storage backends.
var Backends = []string{BackendFile, BackendSQLite, BackendMemory}

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	TUI      TUIConfig      `yaml:"tui"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the task list slot lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Watch reloads the list when the slot file changes on disk. Only the
	// file backend supports it.
	Watch *bool `yaml:"watch"`
}

// WatchEnabled reports whether external slot changes should be watched.
func (s StorageConfig) WatchEnabled() bool {
	return s.Backend == BackendFile && (s.Watch == nil || *s.Watch)
}

// DatabaseConfig holds SQLite settings for the sqlite backend.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme    string `yaml:"theme"`
	ShowHelp bool   `yaml:"show_help"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	watch := true
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Watch:   &watch,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 2,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Watch == nil {
		c.Storage.Watch = defaults.Storage.Watch
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if !isValidBackend(c.Storage.Backend) {
		return fmt.Errorf("storage.backend %q must be one of %v", c.Storage.Backend, Backends)
	}

	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}

	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}

	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout cannot be negative")
	}

	return nil
}

// SlotFile returns the path to the JSON slot file used by the file backend.
func (c *Config) SlotFile() string {
	return filepath.Join(c.DataDir, "store.json")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "tasklist.log")
}

func isValidBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
