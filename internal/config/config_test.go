package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err, "a missing config file is fine")

	assert.Equal(t, "http://localhost:5454", cfg.API.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Store.Path)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://cspace.example.com
log:
  level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://cspace.example.com", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://from-file\n"), 0600))

	t.Setenv("CSPACE_API_BASE_URL", "https://from-env")
	t.Setenv("CSPACE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsEmptyBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: \"\"\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
