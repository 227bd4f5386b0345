package manager

import (
	"context"
	"log/slog"
)

// Config contains configuration for a Manager
type Config struct {
	// Logger is the slog.Logger to use for logging
	// If nil, logging is disabled
	Logger *slog.Logger

	// ErrorHandler receives every non-fatal failure the manager recovers
	// from, after it has been logged. It runs on the reconciling goroutine.
	ErrorHandler func(error)

	// Context is the parent of every store round-trip the manager makes on
	// its own behalf. Close cancels a child of it.
	Context context.Context
}

// Option is a function that modifies Config
type Option func(*Config)

// WithLogger sets the logger for the manager
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithErrorHandler sets a hook that is called with every reported error
func WithErrorHandler(fn func(error)) Option {
	return func(c *Config) {
		c.ErrorHandler = fn
	}
}

// WithContext sets the base context for bootstrap and reconciliation
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}
