// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	// Timezone decides which calendar day counts as "today" for upcoming events.
	Timezone  string `env:"TIMEZONE" envDefault:"Local"`
	SeedDemo  bool   `env:"SEED_DEMO" envDefault:"true"`
	Server    ServerConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	CSRF      CSRFConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Trace exporters understood by TRACING_EXPORTER.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

type TracingConfig struct {
	Enabled      bool    `env:"TRACING_ENABLED" envDefault:"false"`
	Exporter     string  `env:"TRACING_EXPORTER" envDefault:"stdout"`
	ServiceName  string  `env:"TRACING_SERVICE_NAME" envDefault:"eventos"`
	OTLPEndpoint string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4317"`
	SampleRate   float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// CSRFConfig enables gorilla/csrf on form posts when Key is set.
// Key must be 32 bytes.
type CSRFConfig struct {
	Key    string `env:"CSRF_KEY"`
	Secure bool   `env:"CSRF_SECURE" envDefault:"true"`
}

// RateLimitConfig bounds POST requests per client. Zero disables the limit.
type RateLimitConfig struct {
	WritesPerMinute int `env:"RATE_LIMIT_WRITES_PER_MINUTE" envDefault:"30"`
}

// Load reads configuration from the environment. Outside production an
// optional .env file in the working directory is loaded first; variables
// already set in the environment win.
func Load() (Config, error) {
	var cfg Config
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env unless ENVIRONMENT is production. A missing file is
// not an error.
func LoadDotEnv() error {
	var probe struct {
		Environment string `env:"ENVIRONMENT" envDefault:"development"`
	}
	if err := env.Parse(&probe); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if probe.Environment == "production" {
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.CSRF.Key != "" && len(c.CSRF.Key) != 32 {
		return fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(c.CSRF.Key))
	}
	if c.RateLimit.WritesPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_WRITES_PER_MINUTE must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Tracing.Enabled {
		if c.Tracing.Exporter != ExporterStdout && c.Tracing.Exporter != ExporterOTLP {
			return fmt.Errorf("TRACING_EXPORTER must be %q or %q, got %q", ExporterStdout, ExporterOTLP, c.Tracing.Exporter)
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
			return fmt.Errorf("TRACING_SAMPLE_RATE must be between 0 and 1, got %g", c.Tracing.SampleRate)
		}
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
