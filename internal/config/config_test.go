package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero-debounce", func(c *Config) { c.DebounceMs = 0 }, false},
		{"tiny-precision", func(c *Config) { c.PrecisionBits = 8 }, false},
		{"huge-precision", func(c *Config) { c.PrecisionBits = 1 << 20 }, false},
		{"bad-level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"bad-format", func(c *Config) { c.Logging.Format = "xml" }, false},
		{"json-logs", func(c *Config) { c.Logging.Format = "json" }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(cfg)
			err := cfg.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "costau", "config.toml")

	cfg, created, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 300, cfg.DebounceMs)

	// Second load reads the file just written.
	cfg2, created, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cfg, cfg2)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.DebounceMs = 150
	cfg.Theme = "light"
	cfg.History.Enabled = false
	cfg.Logging.Level = "debug"
	require.NoError(t, Save(cfg, path))

	got, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("debounce_ms = -5\n"), 0o644))

	_, err := load(path)
	assert.Error(t, err)
}

func TestManagerReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	m, err := NewManager(path)
	require.NoError(t, err)
	defer m.Close()

	changed := make(chan *Config, 1)
	m.OnChange(func(cfg *Config) { changed <- cfg })
	require.NoError(t, m.Watch())

	cfg := DefaultConfig()
	cfg.DebounceMs = 42
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-changed:
		assert.Equal(t, 42, got.DebounceMs)
		assert.Equal(t, 42, m.Config().DebounceMs)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestManagerKeepsLastGoodConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	m, err := NewManager(path)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.Watch())

	require.NoError(t, os.WriteFile(path, []byte("debounce_ms = \"oops\"\n"), 0o644))

	select {
	case err := <-m.Errors():
		assert.Error(t, err)
		assert.Equal(t, 300, m.Config().DebounceMs, "last good config stays active")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error observed")
	}
}
