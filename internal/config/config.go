// Package config loads server settings from the environment (and .env).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AuthDisabled = "disabled"
	AuthRequired = "required"
)

type Config struct {
	// Server
	Addr        string
	TLSCertFile string
	TLSKeyFile  string
	CORSOrigin  string

	// Logging
	LogLevel  string
	LogFormat string

	// Accounts
	AuthMode    string // disabled or required
	TokenKey    string
	DatabaseURL string

	// Rate limiting, per client IP
	RateLimitPerSecond float64
	RateLimitBurst     int

	// Batch tools
	MaxBatchItems int
	MaxUploadMB   int
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		TLSCertFile: os.Getenv("TLS_CERT_FILE"),
		TLSKeyFile:  os.Getenv("TLS_KEY_FILE"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AuthMode:    strings.ToLower(getEnv("AUTH_MODE", AuthDisabled)),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),

		MaxBatchItems: getEnvInt("MAX_BATCH_ITEMS", 500),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),
	}

	switch cfg.AuthMode {
	case AuthDisabled:
	case AuthRequired:
		if cfg.TokenKey == "" {
			return nil, fmt.Errorf("TOKEN_KEY is required when AUTH_MODE=%s", AuthRequired)
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when AUTH_MODE=%s", AuthRequired)
		}
	default:
		return nil, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthDisabled, AuthRequired, cfg.AuthMode)
	}
	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}
	if cfg.RateLimitPerSecond <= 0 || cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if cfg.MaxBatchItems < 1 {
		return nil, fmt.Errorf("MAX_BATCH_ITEMS must be at least 1, got %d", cfg.MaxBatchItems)
	}
	if cfg.MaxUploadMB < 1 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be at least 1, got %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}

func (c *Config) AuthEnabled() bool { return c.AuthMode == AuthRequired }

func (c *Config) TLSEnabled() bool { return c.TLSCertFile != "" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
