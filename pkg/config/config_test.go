package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Dashboard.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Dashboard.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Dashboard.RequestTimeout)
	assert.True(t, cfg.API.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.APIAddr())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dashboard:
  port: 9000
  api_base_url: http://api.internal:8080
  request_timeout: 3s
  locale: de
api:
  enabled: false
log_level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Dashboard.Port)
	assert.Equal(t, "http://api.internal:8080", cfg.Dashboard.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.RequestTimeout)
	assert.Equal(t, "de", cfg.Dashboard.Locale)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep their defaults
	assert.Equal(t, "0.0.0.0", cfg.Dashboard.Host)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRONIQ_API_BASE_URL", "http://backend:8080")
	t.Setenv("CRONIQ_DASHBOARD_PORT", "7000")
	t.Setenv("CRONIQ_API_ENABLED", "false")
	t.Setenv("KUBECONFIG", "/tmp/kubeconfig")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://backend:8080", cfg.Dashboard.APIBaseURL)
	assert.Equal(t, 7000, cfg.Dashboard.Port)
	assert.False(t, cfg.API.Enabled)
	assert.Equal(t, "/tmp/kubeconfig", cfg.API.Kubeconfig)
}

func TestEnvOverrideRejectsBadPort(t *testing.T) {
	t.Setenv("CRONIQ_DASHBOARD_PORT", "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Dashboard.APIBaseURL = "localhost:8080/api"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.API.Port = 0
	assert.Error(t, cfg.Validate())
	cfg.API.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Dashboard.Port = 8181
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, loaded.Dashboard.Port)
}

func TestSaveWritesEffectiveConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CRONIQ_API_BASE_URL", "http://api.internal:9090")
	t.Setenv("CRONIQ_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)

	out := filepath.Join(dir, "effective.yaml")
	require.NoError(t, cfg.Save(out))

	os.Unsetenv("CRONIQ_API_BASE_URL")
	os.Unsetenv("CRONIQ_LOG_LEVEL")
	loaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, "http://api.internal:9090", loaded.Dashboard.APIBaseURL)
	assert.Equal(t, "debug", loaded.LogLevel)
}
