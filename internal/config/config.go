// Package config loads session settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings for one client session.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `validate:"required,oneof=debug info warn error"`

	// CurrentUserID is the user the login placeholder signs in as.
	CurrentUserID string `validate:"required"`

	// LoginDelay is the artificial wait before login resolves.
	LoginDelay time.Duration `validate:"gte=0"`

	// SessionSecret signs session tokens.
	SessionSecret string `validate:"required,min=16"`

	// SessionTTL is how long a session token stays valid.
	SessionTTL time.Duration `validate:"gt=0"`

	// SeedMockData loads the demo users, groups and expenses on start.
	SeedMockData bool
}

// Load reads configuration from the environment, after loading a .env file
// if one is present. Missing variables fall back to defaults.
func Load() (*Config, error) {
	// Non-fatal if missing
	_ = godotenv.Load()

	delay, err := getEnvDuration("LOGIN_DELAY", time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvBool("SEED_MOCK_DATA", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CurrentUserID: getEnv("CURRENT_USER_ID", "u1"),
		LoginDelay:    delay,
		SessionSecret: getEnv("SESSION_SECRET", "dev-only-change-me"),
		SessionTTL:    ttl,
		SeedMockData:  seed,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
