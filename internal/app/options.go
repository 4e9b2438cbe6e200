package app

import (
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/lock"
	"go.opentelemetry.io/otel/trace"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	cfg            *config.Config
	locker         lock.Locker
	publisher      events.Publisher
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	closers        []func() error
}

// WithConfig sets the settings the services are built from
func WithConfig(cfg *config.Config) Option {
	return func(c *appConfig) {
		c.cfg = cfg
	}
}

// WithLocker sets the ordering lock backend. Defaults to an in-process locker.
func WithLocker(l lock.Locker) Option {
	return func(c *appConfig) {
		c.locker = l
	}
}

// WithEventPublisher sets the activity event publisher for the application
func WithEventPublisher(p events.Publisher) Option {
	return func(c *appConfig) {
		c.publisher = p
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		c.logger = logger
	}
}

// WithTracerProvider sets where move spans are exported
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *appConfig) {
		c.tracerProvider = tp
	}
}

// withCloser registers a resource released by App.Close
func withCloser(fn func() error) Option {
	return func(c *appConfig) {
		c.closers = append(c.closers, fn)
	}
}
