// Package config loads environment-provided defaults for settings the
// judge CLI also exposes as flags. Flags always win; these are the
// fallback when a flag is left unset. Grounded on the teacher's
// internal/config package.
package config

import "os"

// Config holds the environment-derived defaults.
type Config struct {
	PostgresDSN  string
	RedisURL     string
	JWTSecret    string
	LogLevel     string
	SpectatePort string
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() *Config {
	return &Config{
		PostgresDSN:  os.Getenv("JUDGE_POSTGRES_DSN"),
		RedisURL:     os.Getenv("JUDGE_REDIS_URL"),
		JWTSecret:    envOrDefault("JUDGE_JWT_SECRET", "dev-secret-change-me"),
		LogLevel:     envOrDefault("JUDGE_LOG_LEVEL", "info"),
		SpectatePort: envOrDefault("JUDGE_SPECTATE_PORT", "8910"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
