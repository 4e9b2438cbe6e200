package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/services/move"
)

// SweepResult counts what one sweep looked at and rewrote
type SweepResult struct {
	ColumnsChecked   int `json:"columns_checked"`
	ColumnsCompacted int `json:"columns_compacted"`
	BoardsChecked    int `json:"boards_checked"`
	BoardsCompacted  int `json:"boards_compacted"`
	Failures         int `json:"failures"`
}

// Sweeper periodically renumbers columns and boards whose positions have
// become too dense, so moves rarely hit the reactive compaction path.
type Sweeper struct {
	repo     database.DataStore
	moves    move.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
	minGap   int64
	interval time.Duration

	mu        sync.Mutex
	scheduler *gocron.Scheduler
}

// SweeperOption configures a Sweeper
type SweeperOption func(*Sweeper)

// WithLogger sets the sweeper logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) SweeperOption {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInterval overrides compaction.interval
func WithInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// NewSweeper creates a sweeper over the services of a
func NewSweeper(a *app.App, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		repo:     a.Repo(),
		moves:    a.MoveService,
		metrics:  a.Metrics,
		logger:   slog.Default(),
		minGap:   a.Config.Ordering.MinGap,
		interval: a.Config.Compaction.Interval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sweep checks every column and board once. Failures to compact a single
// scope are logged and counted; only failures to enumerate scopes are returned.
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	columnIDs, err := s.repo.ListColumnIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list columns: %w", err)
	}
	for _, id := range columnIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.ColumnsChecked++

		rows, err := s.repo.ListTaskPositions(ctx, id)
		if err != nil {
			return result, fmt.Errorf("failed to read column %d: %w", id, err)
		}
		if !position.NeedsCompaction(positions(rows), s.minGap) {
			continue
		}

		compacted, err := s.moves.Compact(ctx, id, nil)
		if err != nil {
			result.Failures++
			s.logger.Warn("sweeper failed to compact column", "column_id", id, "error", err)
			continue
		}
		if compacted.Rewritten {
			result.ColumnsCompacted++
		}
	}

	boardIDs, err := s.repo.ListBoardIDs(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list boards: %w", err)
	}
	for _, id := range boardIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.BoardsChecked++

		rows, err := s.repo.ListColumnPositions(ctx, id)
		if err != nil {
			return result, fmt.Errorf("failed to read board %d: %w", id, err)
		}
		if !position.NeedsCompaction(positions(rows), s.minGap) {
			continue
		}

		compacted, err := s.moves.CompactBoard(ctx, id, nil)
		if err != nil {
			result.Failures++
			s.logger.Warn("sweeper failed to compact board", "board_id", id, "error", err)
			continue
		}
		if compacted.Rewritten {
			result.BoardsCompacted++
		}
	}

	return result, nil
}

// Start schedules Sweep every interval, first run immediately. Runs never
// overlap; a sweep still in progress makes the next tick wait.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler != nil {
		return errors.New("sweeper already started")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	if _, err := scheduler.Every(s.interval).Do(func() { s.runOnce(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule sweep: %w", err)
	}

	scheduler.StartAsync()
	s.scheduler = scheduler
	s.logger.Info("compaction sweeper started", "interval", s.interval, "min_gap", s.minGap)
	return nil
}

// Stop stops scheduling sweeps
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return
	}
	s.scheduler.Stop()
	s.scheduler = nil
	s.logger.Info("compaction sweeper stopped")
}

// Run starts the sweeper and blocks until ctx is cancelled
func (s *Sweeper) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	result, err := s.Sweep(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("sweep failed", "error", err)
	}

	snap := s.metrics.GetSnapshot()
	s.logger.Info("sweep complete",
		"duration", time.Since(start).Round(time.Millisecond),
		"columns_checked", result.ColumnsChecked,
		"columns_compacted", result.ColumnsCompacted,
		"boards_checked", result.BoardsChecked,
		"boards_compacted", result.BoardsCompacted,
		"failures", result.Failures,
		"moves_committed", snap.MovesCommitted,
		"move_timeouts", snap.MoveTimeouts,
		"compactions", snap.Compactions,
		"reactive_compactions", snap.ReactiveCompactions,
		"activity_failures", snap.ActivityFailures,
		"uptime", snap.Uptime,
	)
}

func positions(rows []models.OrderedPosition) []int64 {
	out := make([]int64, len(rows))
	for i, r := range rows {
		out[i] = r.Position
	}
	return out
}
