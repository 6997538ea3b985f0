// Package config loads stockroom settings from the environment and an optional .env file.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	Operator string

	// Logging
	LogLevel  string
	LogOutput []string

	// Groceries
	ExpiryWindow time.Duration
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads configuration. A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		Operator:     getEnv("STOCKROOM_OPERATOR", getEnv("USER", "")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogOutput:    getEnvList("LOG_OUTPUT", []string{"stderr"}),
		ExpiryWindow: getEnvDuration("STOCKROOM_EXPIRY_WINDOW", 72*time.Hour),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
