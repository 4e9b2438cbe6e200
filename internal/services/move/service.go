package move

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/services/activity"
	"github.com/thenoetrevino/lanes/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/thenoetrevino/lanes/internal/services/move"

// Service defines the ordering and move operations
type Service interface {
	// Write operations
	RequestMove(ctx context.Context, req MoveRequest) (*MoveResult, error)
	Compact(ctx context.Context, columnID types.ColumnID, actor *types.UserID) (*CompactResult, error)
	CompactBoard(ctx context.Context, boardID types.BoardID, actor *types.UserID) (*CompactResult, error)

	// Read operations
	ListOrdered(ctx context.Context, scope Scope) (*OrderedList, error)
	ListColumn(ctx context.Context, columnID types.ColumnID) ([]*models.TaskSummary, error)
	ListBoard(ctx context.Context, boardID types.BoardID) (*models.BoardView, error)
}

// CrossBoardPolicy decides whether a task may move to a column on another board
type CrossBoardPolicy string

const (
	CrossBoardSameBoard   CrossBoardPolicy = "same_board"
	CrossBoardSameProject CrossBoardPolicy = "same_project"
	CrossBoardAny         CrossBoardPolicy = "any"
)

// Valid reports whether p is a known policy
func (p CrossBoardPolicy) Valid() bool {
	switch p {
	case CrossBoardSameBoard, CrossBoardSameProject, CrossBoardAny:
		return true
	}
	return false
}

// Config tunes the engine
type Config struct {
	Stride      int64
	LockTimeout time.Duration
	CrossBoard  CrossBoardPolicy
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Stride:      position.DefaultStride,
		LockTimeout: 5 * time.Second,
		CrossBoard:  CrossBoardSameBoard,
	}
}

// Option configures the service
type Option func(*service)

// WithConfig replaces the default configuration. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(s *service) {
		if cfg.Stride > 1 {
			s.cfg.Stride = cfg.Stride
		}
		if cfg.LockTimeout > 0 {
			s.cfg.LockTimeout = cfg.LockTimeout
		}
		if cfg.CrossBoard.Valid() {
			s.cfg.CrossBoard = cfg.CrossBoard
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the counters updated by moves and compactions
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

// WithTracerProvider sets where spans are sent. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// service implements Service interface
type service struct {
	repo     database.DataStore
	locker   lock.Locker
	recorder activity.Service
	alloc    position.Allocator
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// NewService creates a new move service. recorder may be nil, in which
// case no activity is recorded.
func NewService(repo database.DataStore, locker lock.Locker, recorder activity.Service, opts ...Option) Service {
	s := &service{
		repo:     repo,
		locker:   locker,
		recorder: recorder,
		cfg:      DefaultConfig(),
		logger:   slog.Default(),
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locker == nil {
		s.locker = lock.NewLocal()
	}
	s.alloc = position.New(s.cfg.Stride)
	return s
}

// acquire takes the ordering locks for keys, waiting at most LockTimeout
func (s *service) acquire(ctx context.Context, keys ...string) (lock.Release, error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.cfg.LockTimeout)
	defer cancel()

	release, err := s.locker.Acquire(lockCtx, keys...)
	if err != nil {
		if errors.Is(err, lock.ErrTimeout) {
			s.metrics.IncMoveTimeouts()
			return nil, fmt.Errorf("%w: %w", ErrMoveTimeout, err)
		}
		return nil, err
	}
	return release, nil
}

// inTx runs fn in one transaction. A database still write-locked by another
// process after busy_timeout is reported as ErrMoveTimeout, like a lock wait.
func (s *service) inTx(ctx context.Context, fn func(tx database.DataStore) error) error {
	err := s.repo.WithTx(ctx, fn)
	if errors.Is(err, database.ErrBusy) {
		s.metrics.IncMoveTimeouts()
		return fmt.Errorf("%w: %w", ErrMoveTimeout, err)
	}
	return err
}

// endSpan sets the span status from err and ends it
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
