package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port        string
	Env         string
	MetricsPort string

	DBDriver    string // postgres or sqlite
	PostgresUrl string
	SQLitePath  string

	JWTSecret string
	JWTTTL    time.Duration

	ThrottleBackend  string // memory or redis
	ThrottleCooldown time.Duration
	RedisAddr        string
	RedisPassword    string
}

// Load reads the configuration from the environment, loading a .env file
// first when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
		DBDriver:         getEnv("DB_DRIVER", "postgres"),
		PostgresUrl:      getEnv("POSTGRES_CONN_STR", ""),
		SQLitePath:       getEnv("SQLITE_PATH", "forum.db"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTTTL:           getDuration("JWT_TTL", 72*time.Hour),
		ThrottleBackend:  getEnv("THROTTLE_BACKEND", "memory"),
		ThrottleCooldown: getDuration("THROTTLE_COOLDOWN", 10*time.Second),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
	}
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks the settings that have no safe default outside development.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET environment variable not set")
		}
		c.JWTSecret = defaultJWTSecret
	}
	switch c.DBDriver {
	case "postgres":
		if c.PostgresUrl == "" {
			return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.ThrottleBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported THROTTLE_BACKEND %q", c.ThrottleBackend)
	}
	if c.ThrottleCooldown <= 0 {
		return fmt.Errorf("THROTTLE_COOLDOWN must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}
