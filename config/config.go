// Package config loads service configuration from environment variables.
// A .env file, when present, is loaded first so local development does
// not require exporting variables by hand.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the catalog service.
type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Session   SessionConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

type LoggingConfig struct {
	Level string
}

// SessionConfig controls session-token issuance. SigningKey signs the
// session JWTs; TTL is the validity window from issuance.
type SessionConfig struct {
	SigningKey string
	TTL        string
	CookieName string
}

type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

type ShutdownConfig struct {
	Timeout             string
	ReadinessDrainDelay string
}

// Load reads configuration from the environment, applying defaults for
// anything unset. It never fails; Validate reports bad values.
func Load() *Config {
	// Best-effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "catalog-service"),
			Version: getEnv("SERVICE_VERSION", "dev"),
			Env:     getEnv("SERVICE_ENV", "development"),
			Port:    getEnv("SERVICE_PORT", "5000"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			SigningKey: getEnv("SESSION_SIGNING_KEY", "access"),
			TTL:        getEnv("SESSION_TTL", "1h"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "catalog_session"),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Shutdown: ShutdownConfig{
			Timeout:             getEnv("SHUTDOWN_TIMEOUT", "10s"),
			ReadinessDrainDelay: getEnv("READINESS_DRAIN_DELAY", "0s"),
		},
	}
}

// Validate checks the loaded configuration for values the service
// cannot start with.
func (c *Config) Validate() error {
	if c.Service.Port == "" {
		return fmt.Errorf("SERVICE_PORT must not be empty")
	}
	if c.Session.SigningKey == "" {
		return fmt.Errorf("SESSION_SIGNING_KEY must not be empty")
	}
	if _, err := time.ParseDuration(c.Session.TTL); err != nil {
		return fmt.Errorf("SESSION_TTL: %w", err)
	}
	if _, err := time.ParseDuration(c.Shutdown.Timeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if _, err := time.ParseDuration(c.Shutdown.ReadinessDrainDelay); err != nil {
		return fmt.Errorf("READINESS_DRAIN_DELAY: %w", err)
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("TRACING_SAMPLE_RATE must be within [0, 1], got %v", c.Tracing.SampleRate)
	}
	return nil
}

// GetSessionTTLDuration returns the session validity window.
func (c *Config) GetSessionTTLDuration() time.Duration {
	return parseDurationOr(c.Session.TTL, time.Hour)
}

// GetShutdownTimeoutDuration returns the graceful-shutdown deadline.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return parseDurationOr(c.Shutdown.Timeout, 10*time.Second)
}

// GetReadinessDrainDelayDuration returns how long the service keeps
// failing readiness before shutting the HTTP server down.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return parseDurationOr(c.Shutdown.ReadinessDrainDelay, 0)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
