package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	StorageBackend string
	RedisURL       string
	SQLitePath     string
	SaveDir        string
	SaveTTL        time.Duration

	Difficulty     string
	TuningFile     string
	RosterFile     string
	EventsFile     string
	EncountersFile string
	ItemsFile      string
	Seed           int64

	SessionIdleTimeout time.Duration
}

// Load reads process configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit .env path.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		SQLitePath:     getEnv("SQLITE_PATH", "tribe.db"),
		SaveDir:        getEnv("SAVE_DIR", "./saves"),
		Difficulty:     getEnv("DIFFICULTY", "Normal"),
		TuningFile:     getEnv("TUNING_FILE", ""),
		RosterFile:     getEnv("ROSTER_FILE", ""),
		EventsFile:     getEnv("EVENTS_FILE", ""),
		EncountersFile: getEnv("ENCOUNTERS_FILE", ""),
		ItemsFile:      getEnv("ITEMS_FILE", ""),
	}

	var err error
	if cfg.SaveTTL, err = getDuration("SAVE_TTL", 0); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTimeout, err = getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if v := os.Getenv("SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid SEED %q: %w", v, err)
		}
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendRedis, BackendSQLite, BackendFile:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: want memory, redis, sqlite or file", cfg.StorageBackend)
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
