package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Zero(t, cfg.SaveTTL)
}

func TestLoadFrom_Env(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("SAVE_TTL", "2h")
	t.Setenv("SEED", "42")
	t.Setenv("LOG_LEVEL", "warning")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, 2*time.Hour, cfg.SaveTTL)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoadFrom_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DIFFICULTY=Hard\nPORT=9090\n"), 0o644))
	t.Setenv("PORT", "7070")
	// Registered so the value godotenv sets is cleared after the test.
	t.Setenv("DIFFICULTY", "")
	require.NoError(t, os.Unsetenv("DIFFICULTY"))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "Hard", cfg.Difficulty)
	assert.Equal(t, "7070", cfg.Port, "real environment wins over .env")
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"backend", "STORAGE_BACKEND", "postgres"},
		{"ttl", "SAVE_TTL", "soon"},
		{"seed", "SEED", "abc"},
		{"idle", "SESSION_IDLE_TIMEOUT", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFrom("")
			assert.Error(t, err)
		})
	}
}
