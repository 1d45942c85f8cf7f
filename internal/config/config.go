package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the tracker reads from the environment.
// It is built once at the composition root and passed into
// constructors; business logic never reads ambient environment state.
type Config struct {
	// Mapping API key. May be empty: commands that do not call the
	// API still work, API-dependent ones fail with a configuration
	// error when invoked.
	APIKey string

	// Path of the local SQLite store.
	DBPath string

	// Optional Postgres DSN; when set it takes precedence over DBPath.
	DatabaseURL string

	// Wall-clock interval between polling ticks.
	PollInterval time.Duration

	// Optional listen address for the /metrics endpoint while
	// monitoring (empty disables it).
	MetricsAddr string
}

func Load() Config {
	return Config{
		APIKey:       os.Getenv("MAPS_API_KEY"),
		DBPath:       getEnv("DB_PATH", "commute.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_MINUTES", 30)) * time.Minute,
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
