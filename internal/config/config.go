// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	DatabaseURL string // PostgreSQL; when empty, DBPath (SQLite) is used
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	// DevOwnerID, when set, is used as the owner for requests without a token.
	DevOwnerID  string
	DueSoonDays int
	LogLevel    string
	LogFormat   string // text or json
}

// Load reads a .env file if one exists, then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	dueSoon, err := strconv.Atoi(getEnv("DUE_SOON_DAYS", "7"))
	if err != nil || dueSoon < 0 {
		return nil, fmt.Errorf("invalid DUE_SOON_DAYS %q", os.Getenv("DUE_SOON_DAYS"))
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBPath:      getEnv("DB_PATH", "./data/debts.db"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    ttl,
		DevOwnerID:  getEnv("DEV_OWNER_ID", ""),
		DueSoonDays: dueSoon,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if cfg.JWTSecret == "" && cfg.DevOwnerID == "" {
		return nil, fmt.Errorf("JWT_SECRET or DEV_OWNER_ID must be set")
	}
	return cfg, nil
}

// DueSoonWindow is DueSoonDays as a duration.
func (c *Config) DueSoonWindow() time.Duration {
	return time.Duration(c.DueSoonDays) * 24 * time.Hour
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
