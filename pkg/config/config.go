package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL         string
	IndexRoot       string
	PageSize        int
	HTTPTimeout     time.Duration
	CopyrightHolder string
	ContentDir      string
	ServerPort      string
	MetricsPort     string
	OTelEnabled     bool
	LogLevel        slog.Level
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		BaseURL:         getEnv("SHIVA_BASE_URL", "http://localhost:8081"),
		IndexRoot:       getEnv("SHIVA_INDEX_ROOT", "/cloud"),
		PageSize:        getIntEnv("PAGE_SIZE", 3),
		HTTPTimeout:     getDurationEnv("HTTP_TIMEOUT", 10*time.Second),
		CopyrightHolder: getEnv("COPYRIGHT_HOLDER", "Pruthviraj"),
		ContentDir:      getEnv("CONTENT_DIR", "content"),
		ServerPort:      getEnv("SERVER_PORT", "8081"),
		MetricsPort:     getEnv("METRICS_PORT", "9090"),
		OTelEnabled:     getBoolEnv("OTEL_ENABLED", false),
		LogLevel:        getLevelEnv("LOG_LEVEL", slog.LevelInfo),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
		slog.Warn("Ignoring invalid integer setting", "key", key, "value", value)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
		slog.Warn("Ignoring invalid boolean setting", "key", key, "value", value)
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		// Try parsing as duration string (e.g. "1m", "60s")
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// Try parsing as integer seconds
		if i, err := strconv.Atoi(value); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}

func getLevelEnv(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
