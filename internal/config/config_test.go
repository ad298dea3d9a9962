package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/atomkv.db", cfg.Store.Path)
	assert.Equal(t, "250ms", cfg.Atom.DebounceDelay)
	assert.False(t, cfg.Logging.Debug)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atomkv.yaml")
	body := `
store:
  path: /tmp/alt.db
atom:
  debounce_delay: 1s
logging:
  debug: true
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/alt.db", cfg.Store.Path)
	assert.Equal(t, "1s", cfg.Atom.DebounceDelay)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atomkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "atomkv.yaml")

	cfg := DefaultConfig()
	cfg.Store.Path = "/var/data/app.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/data/app.db", loaded.Store.Path)
}

func TestDebounceDelay(t *testing.T) {
	cfg := DefaultConfig()

	d, err := cfg.DebounceDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	cfg.Atom.DebounceDelay = "nonsense"
	_, err = cfg.DebounceDelay()
	assert.Error(t, err)

	cfg.Atom.DebounceDelay = "-1s"
	_, err = cfg.DebounceDelay()
	assert.Error(t, err)
}
