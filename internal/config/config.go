// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"watchlist_backend/internal/platform/db"
	infraredis "watchlist_backend/internal/platform/redis"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is not set.
var ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable is required")

// Config is the explicit configuration object handed to constructors at startup.
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    slog.Level
	CORSOrigins []string

	// Auth
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Storage
	DB    db.Config
	Redis infraredis.Config

	PlatformCacheTTL time.Duration
}

// IsProduction reports whether ENVIRONMENT is "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the configuration from the environment.
// It fails when the signing secret is absent so the process never starts without one.
func Load() (*Config, error) {
	cfg := LoadStorage()
	cfg.Port = getEnv("PORT", "4000")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGIN", "*"))

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.TokenTTL = time.Duration(getEnvInt("JWT_TTL_HOURS", 7*24)) * time.Hour
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", 10)

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

// LoadStorage reads only the logging and storage settings.
// Offline tools such as the seed command use it because they never sign tokens.
func LoadStorage() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLevel(getEnv("LOG_LEVEL", "info")),

		DB:    db.LoadConfigFromEnv(),
		Redis: infraredis.LoadConfigFromEnv(),

		PlatformCacheTTL: time.Duration(getEnvInt("PLATFORM_CACHE_TTL_SECONDS", 300)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
