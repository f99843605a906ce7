package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAddr          = ":8080"
	defaultRedirectDelay = 1500 * time.Millisecond
	defaultRateLimit     = 10
)

// Provider is the read-only view of the configuration that the rest of the
// application depends on. Tests can substitute a small mock.
type Provider interface {
	GetAddr() string
	GetAPIBaseURL() string
	GetSessionSecret() string
	GetSessionSecure() bool
	GetRedirectDelay() time.Duration
	GetRateLimitPerMinute() int
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	Addr               string
	APIBaseURL         string
	SessionSecret      string
	SessionSecure      bool
	RedirectDelay      time.Duration
	RateLimitPerMinute int
	LogFormat          string
	LogLevel           string
}

// New loads configuration from a .env file (if present) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:               getEnv("APP_ADDR", defaultAddr),
		APIBaseURL:         strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedirectDelay:      defaultRedirectDelay,
		RateLimitPerMinute: defaultRateLimit,
	}

	if v := os.Getenv("SESSION_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_SECURE %q: %w", v, err)
		}
		cfg.SessionSecure = secure
	}

	if v := os.Getenv("REDIRECT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIRECT_DELAY %q: %w", v, err)
		}
		cfg.RedirectDelay = d
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", v)
		}
		cfg.RateLimitPerMinute = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("required environment variable API_BASE_URL is not set")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("required environment variable SESSION_SECRET is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetAddr() string                 { return c.Addr }
func (c *Config) GetAPIBaseURL() string           { return c.APIBaseURL }
func (c *Config) GetSessionSecret() string        { return c.SessionSecret }
func (c *Config) GetSessionSecure() bool          { return c.SessionSecure }
func (c *Config) GetRedirectDelay() time.Duration { return c.RedirectDelay }
func (c *Config) GetRateLimitPerMinute() int      { return c.RateLimitPerMinute }
func (c *Config) GetLogFormat() string            { return c.LogFormat }
func (c *Config) GetLogLevel() string             { return c.LogLevel }
