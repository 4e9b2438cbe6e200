package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/services/activity"
	"github.com/thenoetrevino/lanes/internal/services/move"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Activity fan-out
	publisher events.Publisher

	closers []func() error

	Config  *config.Config
	Metrics *metrics.Metrics

	// Service layer (business logic)
	ActivityService activity.Service
	MoveService     move.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, opts ...Option) *App {
	c := &appConfig{}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.locker == nil {
		c.locker = lock.NewLocal()
	}
	if c.publisher == nil {
		c.publisher = events.NopPublisher{}
	}

	repo := database.NewRepository(db)
	m := metrics.New()

	activityService := activity.NewService(repo,
		activity.WithPublisher(c.publisher),
		activity.WithLogger(c.logger),
		activity.WithMetrics(m),
		activity.WithPublishRetries(c.cfg.Events.PublishRetries),
	)

	moveOpts := []move.Option{
		move.WithConfig(MoveConfig(c.cfg)),
		move.WithLogger(c.logger),
		move.WithMetrics(m),
	}
	if c.tracerProvider != nil {
		moveOpts = append(moveOpts, move.WithTracerProvider(c.tracerProvider))
	}

	return &App{
		repo:            repo,
		publisher:       c.publisher,
		closers:         c.closers,
		Config:          c.cfg,
		Metrics:         m,
		ActivityService: activityService,
		MoveService:     move.NewService(repo, c.locker, activityService, moveOpts...),
	}
}

// FromConfig opens the database and the configured lock and event backends,
// then builds the App. Close releases everything it opened.
func FromConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	path := cfg.Database.Path
	if path == "" {
		p, err := database.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	db, err := database.InitDB(ctx, path)
	if err != nil {
		return nil, err
	}

	all := []Option{WithConfig(cfg), withCloser(db.Close)}

	locker, closeLocker, err := newLocker(ctx, cfg.Lock)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	all = append(all, WithLocker(locker))
	if closeLocker != nil {
		all = append(all, withCloser(closeLocker))
	}

	if cfg.Events.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			// events are best-effort; run without fan-out
			slog.Warn("activity events disabled", "error", err)
		} else {
			all = append(all, WithEventPublisher(publisher))
		}
	}

	return New(db, append(all, opts...)...), nil
}

// newLocker builds the configured ordering lock
func newLocker(ctx context.Context, cfg config.LockConfig) (lock.Locker, func() error, error) {
	if cfg.Backend != "redis" {
		return lock.NewLocal(), nil, nil
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return lock.NewRedis(client, lock.WithTTL(cfg.TTL)), client.Close, nil
}

// MoveConfig maps the file configuration onto the move engine settings
func MoveConfig(cfg *config.Config) move.Config {
	return move.Config{
		Stride:      cfg.Ordering.Stride,
		LockTimeout: cfg.Moves.LockTimeout,
		CrossBoard:  move.CrossBoardPolicy(cfg.Moves.CrossBoard),
	}
}

// Repo returns the underlying repository for direct database access.
// Used by fixtures and the sweeper, which read positions without a service.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close releases the publisher and everything FromConfig opened
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
