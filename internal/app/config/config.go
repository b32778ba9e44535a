// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"news_backend/internal/platform/db"
	"news_backend/internal/platform/redis"
)

const (
	// devJWTSecret signs tokens outside release mode when JWT_SECRET is unset.
	devJWTSecret = "dev-only-insecure-secret"

	// defaultAuthRateLimit is the number of signup and login attempts one
	// client IP may make per minute.
	defaultAuthRateLimit = 10
)

// Config holds every setting the server needs. It is built once in main.
type Config struct {
	Addr    string
	GinMode string

	DB            db.Config
	RunMigrations bool

	Redis redis.Config

	JWTSecret    string
	SessionTTL   time.Duration
	SecureCookie bool

	// AuthRateLimit caps signup and login attempts per client IP and
	// minute. Zero disables the limit.
	AuthRateLimit int

	CORSOrigins []string
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == gin.ReleaseMode
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// Load reads the environment. Call godotenv first to pick up a .env file.
// JWT_SECRET is mandatory in release mode.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:    envOrDefault("APP_ADDR", ":8080"),
		GinMode: envOrDefault("GIN_MODE", gin.DebugMode),
		DB:      db.LoadConfigFromEnv(),
		Redis: redis.Config{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}

	var err error
	cfg.RunMigrations, err = envBool("RUN_MIGRATIONS", cfg.DB.Driver == db.DriverSQLite)
	if err != nil {
		return nil, err
	}
	cfg.SecureCookie, err = envBool("SECURE_COOKIE", cfg.IsRelease())
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", v)
		}
		cfg.SessionTTL = ttl
	}

	cfg.AuthRateLimit = defaultAuthRateLimit
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("AUTH_RATE_LIMIT must be a non-negative integer, got %q", v)
		}
		cfg.AuthRateLimit = n
	}

	if cfg.JWTSecret == "" {
		if cfg.IsRelease() {
			return nil, errors.New("JWT_SECRET must be set in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

// splitList parses a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
