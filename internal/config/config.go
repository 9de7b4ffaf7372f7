// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr" validate:"required"`

	// HTTP server timeouts in milliseconds.
	ReadTimeoutMS       int `koanf:"read_timeout_ms" validate:"gt=0"`
	WriteTimeoutMS      int `koanf:"write_timeout_ms" validate:"gt=0"`
	IdleTimeoutMS       int `koanf:"idle_timeout_ms" validate:"gt=0"`
	ReadHeaderTimeoutMS int `koanf:"read_header_timeout_ms" validate:"gt=0"`
	ShutdownTimeoutMS   int `koanf:"shutdown_timeout_ms" validate:"gt=0"`

	// MetricsEnabled exposes GET /metrics and records request metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// DocsEnabled serves the OpenAPI document and the docs page.
	DocsEnabled bool `koanf:"docs_enabled"`
}

// New creates a Config holding the defaults. Context is accepted first to
// satisfy the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8000",
		ReadTimeoutMS:       10_000,
		WriteTimeoutMS:      10_000,
		IdleTimeoutMS:       60_000,
		ReadHeaderTimeoutMS: 5_000,
		ShutdownTimeoutMS:   30_000,
		MetricsEnabled:      true,
		DocsEnabled:         true,
	}
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// ReadTimeout returns ReadTimeoutMS as a duration.
func (c *Config) ReadTimeout() time.Duration { return ms(c.ReadTimeoutMS) }

// WriteTimeout returns WriteTimeoutMS as a duration.
func (c *Config) WriteTimeout() time.Duration { return ms(c.WriteTimeoutMS) }

// IdleTimeout returns IdleTimeoutMS as a duration.
func (c *Config) IdleTimeout() time.Duration { return ms(c.IdleTimeoutMS) }

// ReadHeaderTimeout returns ReadHeaderTimeoutMS as a duration.
func (c *Config) ReadHeaderTimeout() time.Duration { return ms(c.ReadHeaderTimeoutMS) }

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration { return ms(c.ShutdownTimeoutMS) }
