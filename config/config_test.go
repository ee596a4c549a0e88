package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOBBYLAB_CONFIG", "HOBBYLAB_ENV", "HOBBYLAB_DEBUG", "HOBBYLAB_TIMEZONE", "HOBBYLAB_OWNER",
		"HOBBYLAB_STORAGE", "HOBBYLAB_SQLITE_PATH", "DATABASE_URL", "DATABASE_MAX_CONNS",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"HOBBYLAB_SAVE_ATTEMPTS", "HOBBYLAB_SAVE_TIMEOUT", "HOBBYLAB_BREAKER_THRESHOLD", "HOBBYLAB_BREAKER_TIMEOUT",
		"HOBBYLAB_EVENTS_ASYNC", "HOBBYLAB_EVENTS_WORKERS", "HOBBYLAB_EVENTS_REDIS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, "default", cfg.App.Owner)
	assert.Equal(t, time.Local, cfg.App.Location)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "hobbylab.db", filepath.Base(cfg.Storage.SQLitePath))
	assert.Equal(t, 3, cfg.Persistence.SaveAttempts)
	assert.Equal(t, 5*time.Second, cfg.Persistence.SaveTimeout)
	assert.Equal(t, 30*time.Second, cfg.Persistence.BreakerTimeout)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOBBYLAB_STORAGE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/hobbylab")
	t.Setenv("HOBBYLAB_TIMEZONE", "UTC")
	t.Setenv("HOBBYLAB_SAVE_TIMEOUT", "250ms")
	t.Setenv("HOBBYLAB_EVENTS_REDIS", "true")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, time.UTC, cfg.App.Location)
	assert.Equal(t, 250*time.Millisecond, cfg.Persistence.SaveTimeout)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.True(t, cfg.UsesRedis())
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "hobbylab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  owner: alice
  timezone: Europe/Berlin
storage:
  backend: memory
persistence:
  save_attempts: 5
  breaker_timeout: 1m
`), 0o600))
	t.Setenv("HOBBYLAB_OWNER", "bob")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "bob", cfg.App.Owner)
	assert.Equal(t, "Europe/Berlin", cfg.App.Location.String())
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 5, cfg.Persistence.SaveAttempts)
	assert.Equal(t, time.Minute, cfg.Persistence.BreakerTimeout)
	assert.Equal(t, 5*time.Second, cfg.Persistence.SaveTimeout)
}

func TestLoadFile_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [unclosed"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.App.Timezone = "Mars/Olympus"
	cfg.App.Owner = " "
	cfg.Storage.Backend = "postgres"
	cfg.Persistence.SaveAttempts = 0
	cfg.Persistence.BreakerThreshold = 0

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "HOBBYLAB_TIMEZONE")
	assert.Contains(t, msg, "HOBBYLAB_OWNER")
	assert.Contains(t, msg, "DATABASE_URL")
	assert.Contains(t, msg, "HOBBYLAB_SAVE_ATTEMPTS")
	assert.Contains(t, msg, "HOBBYLAB_BREAKER_THRESHOLD")

	cfg = Defaults()
	cfg.Storage.Backend = "floppy"
	assert.ErrorContains(t, cfg.Validate(), "unknown backend")
}
