package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds every user-tunable setting.
type Config struct {
	// DebounceMs is the idle delay in milliseconds before the expression the
	// user is typing gets evaluated.
	DebounceMs int `toml:"debounce_ms"`

	// PrecisionBits is the big.Float precision used for approximations.
	PrecisionBits uint `toml:"precision_bits"`

	// Theme selects the UI color theme.
	Theme string `toml:"theme"`

	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
}

// HistoryConfig controls evaluation history persistence.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	// Path of the SQLite database. Empty means a default under the user
	// config directory.
	Path string `toml:"path"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
	// File receives the log output; empty means stderr. The TUI owns stdout,
	// so logs never go there.
	File string `toml:"file"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DebounceMs:    300,
		PrecisionBits: 64,
		Theme:         "dark",
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks value ranges. Invalid configs are rejected both at startup
// and on live reload.
func (c *Config) Validate() error {
	if c.DebounceMs <= 0 {
		return fmt.Errorf("debounce_ms must be positive, got %d", c.DebounceMs)
	}
	if c.PrecisionBits < 16 || c.PrecisionBits > 1<<16 {
		return fmt.Errorf("precision_bits must be between 16 and %d, got %d", 1<<16, c.PrecisionBits)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// DefaultPath returns the location of the config file under the user config
// directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "costau", "config.toml"), nil
}

// DefaultHistoryPath returns the history database location used when the
// config does not name one.
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}
	return filepath.Join(dir, "costau", "history.db"), nil
}

// Save writes the config as TOML, creating the parent directory if needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// load reads and validates the config at path. A missing file yields the
// defaults.
func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrCreate loads the config at path, writing the defaults there first
// when the file does not exist. It reports whether the file was created.
func LoadOrCreate(path string) (*Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			return nil, false, fmt.Errorf("write default config: %w", err)
		}
		return cfg, true, nil
	}

	cfg, err := load(path)
	if err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}
