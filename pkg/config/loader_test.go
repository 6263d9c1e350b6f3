package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Пустая директория без config.yaml
	t.Chdir(t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "trafficsim", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, 10000, cfg.Simulator.MaxSignals)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
app:
  name: simulator-svc
  environment: staging
http:
  port: 9090
simulator:
  max_signals: 500
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "simulator-svc", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 500, cfg.Simulator.MaxSignals)
	// Незатронутые ключи остаются дефолтными
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("TRAFFICSIM_LOG_LEVEL", "debug")
	t.Setenv("TRAFFICSIM_HTTP_PORT", "8181")
	t.Setenv("TRAFFICSIM_SIMULATOR_MAX_SIGNALS", "42")
	t.Setenv("TRAFFICSIM_HTTP_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8181, cfg.HTTP.Port)
	assert.Equal(t, 42, cfg.Simulator.MaxSignals)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORS.AllowedOrigins)
}

func TestLoadWithServiceDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadWithServiceDefaults("simulator-svc", 8090)
	require.NoError(t, err)

	assert.Equal(t, "simulator-svc", cfg.App.Name)
	assert.Equal(t, 8090, cfg.HTTP.Port)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}
