package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// StorageBackend selects the session persistence backend.
	StorageBackend string // "redis" or "bolt"
	RedisURL       string
	BoltPath       string
	DataDir        string // game definition files

	// ForcedDelay is the pause between a Forced result and the
	// scheduled continuation of the chain.
	ForcedDelay time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "redis")),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379"),
		BoltPath:       getEnv("BOLT_PATH", "./adventure.db"),
		DataDir:        getEnv("DATA_DIR", "./data/games"),
		ForcedDelay:    parseDuration(getEnv("FORCED_DELAY", "5s"), 5*time.Second),
	}
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

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
