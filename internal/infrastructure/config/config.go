package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port        string
	Environment string
	FrontendURL string
	LogLevel    slog.Level

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost int
	RedisURL   string
	SentryDSN  string
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// NewConfig creates a new Config instance, loading values from environment variables.
// A missing JWT_SECRET is a startup error.
func NewConfig() (*Config, error) {
	expiry, err := ParseExpiry(getEnv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("NODE_ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3001"),
		LogLevel:    parseLevel(getEnv("LOG_LEVEL", "info")),
		DBHost:      getEnv("DB_HOST", "postgres"),
		DBPort:      getEnvAsInt("DB_PORT", 5432),
		DBName:      getEnv("DB_NAME", "education_platform"),
		DBUser:      getEnv("DB_USER", "admin"),
		DBPassword:  getEnv("DB_PASSWORD", ""),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTExpiry:   expiry,
		BcryptCost:  getEnvAsInt("BCRYPT_COST", 12),
		RedisURL:    getEnv("REDIS_URL", ""),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	return cfg, nil
}

// GetPort returns the HTTP listen port.
func (c *Config) GetPort() string {
	return c.Port
}

// GetFrontendURL returns the single origin allowed by CORS.
func (c *Config) GetFrontendURL() string {
	return c.FrontendURL
}

// GetJWTExpiry returns the lifetime of issued tokens.
func (c *Config) GetJWTExpiry() time.Duration {
	return c.JWTExpiry
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DatabaseDSN builds a libpq-style connection URL from the DB_* settings.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// ParseExpiry accepts a Go duration ("168h") or a whole number of days ("7d").
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiry must be positive, got %q", s)
	}
	return d, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
