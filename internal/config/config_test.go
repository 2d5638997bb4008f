// ABOUTME: Tests for configuration loading and saving.
// ABOUTME: Uses temporary XDG directories to isolate from the real home.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/jot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg := DefaultConfig()

	assert.Equal(t, storage.KindFile, cfg.Backend)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "jot"), cfg.DataDir)
	assert.True(t, cfg.AutoSync)
	assert.False(t, cfg.Async)
}

func TestConfigPathUsesXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	assert.Equal(t, filepath.Join(tmp, "jot", "config.yaml"), ConfigPath())
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, ConfigExists())
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	cfg := &Config{
		Backend:   storage.KindSQLite,
		DataDir:   filepath.Join(tmp, "data"),
		Async:     true,
		CharmHost: "charm.example.com",
		AutoSync:  false,
	}
	require.NoError(t, SaveConfig(cfg, ""))
	assert.True(t, ConfigExists())

	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: badger\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, storage.KindBadger, cfg.Backend)
	assert.Equal(t, filepath.Join("/tmp/xdg-data", "jot"), cfg.DataDir)
	assert.True(t, cfg.AutoSync)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: floppy\n"), 0600))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, storage.ErrUnknownBackend)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated\n"), 0600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestStorageOptions(t *testing.T) {
	cfg := &Config{Backend: storage.KindMemory, DataDir: "/d", Async: true, CharmHost: "h", AutoSync: true}
	called := false

	opts := cfg.StorageOptions(func(error) { called = true })
	opts.OnError(nil)

	assert.Equal(t, storage.KindMemory, opts.Kind)
	assert.Equal(t, "/d", opts.DataDir)
	assert.Equal(t, "h", opts.CharmHost)
	assert.True(t, opts.Async)
	assert.True(t, opts.AutoSync)
	assert.True(t, called)
}
