// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

type LoggingConfig struct {
	Level string
}

type DatabaseConfig struct {
	DSN string
}

// TokenConfig carries the session-token key material. The key arrives
// base64-encoded from the environment, never from source code.
type TokenConfig struct {
	Key string
	TTL string
}

type BadWordsConfig struct {
	Endpoint string
	APIKey   string
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

type ServerConfig struct {
	ShutdownTimeout     string
	ReadinessDrainDelay string
	AllowedOrigins      []string
}

type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Token     TokenConfig
	BadWords  BadWordsConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Server    ServerConfig
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getenv("SERVICE_NAME", "qna-service"),
			Version: getenv("SERVICE_VERSION", "dev"),
			Env:     getenv("SERVICE_ENV", "development"),
			Port:    getenv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			DSN: getenv("POSTGRES_DSN", ""),
		},
		Token: TokenConfig{
			Key: getenv("TOKEN_KEY", ""),
			TTL: getenv("SESSION_TTL", "24h"),
		},
		BadWords: BadWordsConfig{
			Endpoint: getenv("BAD_WORDS_API_ENDPOINT", ""),
			APIKey:   getenv("BAD_WORDS_API_KEY", ""),
		},
		Tracing: TracingConfig{
			Enabled:    getenv("TRACING_ENABLED", "false") == "true",
			Endpoint:   getenv("TRACING_ENDPOINT", "localhost:4318"),
			SampleRate: getfloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getenv("PROFILING_ENABLED", "false") == "true",
			Endpoint: getenv("PROFILING_ENDPOINT", "http://localhost:4040"),
		},
		Server: ServerConfig{
			ShutdownTimeout:     getenv("SHUTDOWN_TIMEOUT", "10s"),
			ReadinessDrainDelay: getenv("READINESS_DRAIN_DELAY", "0s"),
			AllowedOrigins:      strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		},
	}
}

// Validate rejects configurations the service cannot start with. These are
// the only process-fatal failures besides a dead database.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("POSTGRES_DSN is required")
	}
	if c.Token.Key == "" {
		return errors.New("TOKEN_KEY is required")
	}
	if c.BadWords.Endpoint == "" {
		return errors.New("BAD_WORDS_API_ENDPOINT is required")
	}
	if c.BadWords.APIKey == "" {
		return errors.New("BAD_WORDS_API_KEY is required")
	}
	if _, err := time.ParseDuration(c.Token.TTL); err != nil {
		return fmt.Errorf("SESSION_TTL: %w", err)
	}
	return nil
}

// GetSessionTTLDuration returns the token validity window.
func (c *Config) GetSessionTTLDuration() time.Duration {
	return getduration(c.Token.TTL, 24*time.Hour)
}

// GetShutdownTimeoutDuration returns how long graceful shutdown may take.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return getduration(c.Server.ShutdownTimeout, 10*time.Second)
}

// GetReadinessDrainDelayDuration returns how long to fail readiness before
// stopping the HTTP server.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return getduration(c.Server.ReadinessDrainDelay, 0)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getduration(v string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}
