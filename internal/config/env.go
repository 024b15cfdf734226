package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted after the configuration file is decoded.
const (
	EnvDisableIntersphinx = "DOCGALLERY_DISABLE_INTERSPHINX"
	EnvLogLevel           = "DOCGALLERY_LOG_LEVEL"
	EnvWorkers            = "DOCGALLERY_WORKERS"
)

// loadEnvFile loads .env and .env.local when present. Variables already set
// in the process environment are not overwritten.
func loadEnvFile() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			slog.Warn("failed to load env file", slog.String("path", envPath), slog.String("error", err.Error()))
			continue
		}
		slog.Debug("loaded environment file", slog.String("path", envPath))
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv(EnvDisableIntersphinx); ok && truthy(v) {
		cfg.Intersphinx.Disabled = true
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Build.LogLevel = LogLevel(v)
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Build.Workers = n
		}
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
