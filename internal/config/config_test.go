package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
db:
  path: "test.db"
log:
  level: "debug"
  format: "json"
auth:
  signing_key: "file-signing-key"
  token_ttl: "30m"
breathing:
  tick: "500ms"
  idle_ttl: "2h"
  sweep_interval: "1m"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "test.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "file-signing-key", cfg.Auth.SigningKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Breathing.Tick)
	assert.Equal(t, 2*time.Hour, cfg.Breathing.IdleTTL)
	assert.Equal(t, time.Minute, cfg.Breathing.SweepInterval)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	// No configs/ directory next to this package.
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "app.db", cfg.DB.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, time.Second, cfg.Breathing.Tick)
	assert.Equal(t, time.Hour, cfg.Breathing.IdleTTL)
	assert.Equal(t, 5*time.Minute, cfg.Breathing.SweepInterval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\nauth:\n  signing_key: \"file-key-123\"\n")
	t.Setenv("MINDFUL_PORT", "7070")
	t.Setenv("MINDFUL_AUTH_SIGNING_KEY", "env-key-456")
	t.Setenv("MINDFUL_BREATHING_TICK", "2s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "env-key-456", cfg.Auth.SigningKey)
	assert.Equal(t, 2*time.Second, cfg.Breathing.Tick)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err, "explicit path must exist")

	path := writeConfig(t, "breathing:\n  tick: \"0s\"\n")
	_, err = Load(path)
	assert.ErrorIs(t, err, errNonPositive)

	path = writeConfig(t, "port: [\n")
	_, err = Load(path)
	assert.Error(t, err)
}
