package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/metrics"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// NotifiableTask is the notifiable_type used for task notifications
const NotifiableTask = "task"

// Service records and reads the activity trail
type Service interface {
	// Write operations (called after the change has committed)
	RecordMove(ctx context.Context, actor *types.UserID, move Move) (*models.Activity, error)
	RecordCompaction(ctx context.Context, actor *types.UserID, c Compaction) (*models.Activity, error)

	// Read operations
	ListActivities(ctx context.Context, filter database.ActivityFilter) ([]*models.Activity, error)
	ListNotifications(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*models.Notification, error)
}

// Move describes a committed task move
type Move struct {
	TaskID       types.TaskID
	FromColumnID types.ColumnID
	ToColumnID   types.ColumnID
	FromBoardID  types.BoardID
	ToBoardID    types.BoardID
	FromPosition int64
	ToPosition   int64
	Compacted    bool
}

// Compaction describes a committed renumbering of one scope
type Compaction struct {
	BoardID  types.BoardID
	ColumnID types.ColumnID // zero for board-scope compaction
	Count    int
}

// Option configures the service
type Option func(*service)

// WithPublisher sets where activity events are announced
func WithPublisher(p events.Publisher) Option {
	return func(s *service) {
		if p != nil {
			s.publisher = p
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

// WithMetrics sets the counters updated on publish
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *service) {
		s.metrics = m
	}
}

// WithPublishRetries sets how many times an event publish is attempted
func WithPublishRetries(n int) Option {
	return func(s *service) {
		if n > 0 {
			s.publishRetries = n
		}
	}
}

// service implements Service interface
type service struct {
	repo           database.DataStore
	publisher      events.Publisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	publishRetries int
}

// NewService creates a new activity service
func NewService(repo database.DataStore, opts ...Option) Service {
	s := &service{
		repo:           repo,
		publisher:      events.NopPublisher{},
		logger:         slog.Default(),
		publishRetries: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordMove stores a task.moved activity and notifies the task's
// assignees other than the actor
func (s *service) RecordMove(ctx context.Context, actor *types.UserID, move Move) (*models.Activity, error) {
	task := s.taskTitle(ctx, move.TaskID)
	from := s.columnName(ctx, move.FromColumnID)
	to := s.columnName(ctx, move.ToColumnID)

	description := fmt.Sprintf("moved %q from %q to %q", task, from, to)
	if move.FromColumnID == move.ToColumnID {
		description = fmt.Sprintf("reordered %q in %q", task, to)
	}

	activity := &models.Activity{
		TaskID:      &move.TaskID,
		UserID:      actor,
		Type:        models.ActivityTaskMoved,
		Description: description,
		Metadata: map[string]any{
			"from_column_id": int64(move.FromColumnID),
			"to_column_id":   int64(move.ToColumnID),
			"from_board_id":  int64(move.FromBoardID),
			"to_board_id":    int64(move.ToBoardID),
			"from_position":  move.FromPosition,
			"to_position":    move.ToPosition,
			"compacted":      move.Compacted,
		},
	}
	s.attachScope(ctx, activity, move.ToBoardID)

	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if err := tx.CreateActivity(ctx, activity); err != nil {
			return err
		}
		return s.notifyAssignees(ctx, tx, activity, move.TaskID, actor)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: task %d: %w", ErrActivityRecordingFailed, move.TaskID, err)
	}

	s.publish(ctx, activity)
	return activity, nil
}

// RecordCompaction stores a column.compacted or board.compacted activity
func (s *service) RecordCompaction(ctx context.Context, actor *types.UserID, c Compaction) (*models.Activity, error) {
	activity := &models.Activity{
		UserID:   actor,
		Metadata: map[string]any{"count": c.Count},
	}
	if c.ColumnID != 0 {
		activity.Type = models.ActivityColumnCompacted
		activity.Description = fmt.Sprintf("renumbered %d tasks in %q", c.Count, s.columnName(ctx, c.ColumnID))
		activity.Metadata["column_id"] = int64(c.ColumnID)
	} else {
		activity.Type = models.ActivityBoardCompacted
		activity.Description = fmt.Sprintf("renumbered %d columns", c.Count)
	}
	s.attachScope(ctx, activity, c.BoardID)

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrActivityRecordingFailed, activity.Type, err)
	}

	s.publish(ctx, activity)
	return activity, nil
}

// ListActivities returns activity rows newest first
func (s *service) ListActivities(ctx context.Context, filter database.ActivityFilter) ([]*models.Activity, error) {
	return s.repo.ListActivities(ctx, filter)
}

// ListNotifications returns a user's notifications newest first
func (s *service) ListNotifications(ctx context.Context, userID types.UserID, unreadOnly bool) ([]*models.Notification, error) {
	return s.repo.ListNotifications(ctx, userID, unreadOnly)
}

// ============================================================================
// Helpers
// ============================================================================

// attachScope fills in the tenant chain of boardID. A missing board leaves
// the scope fields empty rather than dropping the activity.
func (s *service) attachScope(ctx context.Context, activity *models.Activity, boardID types.BoardID) {
	if boardID == 0 {
		return
	}
	activity.BoardID = &boardID

	scope, err := s.repo.GetBoardScope(ctx, boardID)
	if err != nil {
		s.logger.Warn("activity scope lookup failed", "board_id", boardID, "error", err)
		return
	}
	activity.ProjectID = &scope.ProjectID
	activity.WorkspaceID = &scope.WorkspaceID
}

func (s *service) taskTitle(ctx context.Context, id types.TaskID) string {
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return fmt.Sprintf("task #%d", id)
	}
	return task.Title
}

func (s *service) columnName(ctx context.Context, id types.ColumnID) string {
	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		return fmt.Sprintf("column #%d", id)
	}
	return column.Name
}

func (s *service) notifyAssignees(ctx context.Context, tx database.DataStore, activity *models.Activity, taskID types.TaskID, actor *types.UserID) error {
	assignees, err := tx.GetTaskAssigneeIDs(ctx, taskID)
	if err != nil {
		return err
	}

	for _, userID := range assignees {
		if actor != nil && userID == *actor {
			continue
		}
		data := make(map[string]any, len(activity.Metadata)+2)
		for k, v := range activity.Metadata {
			data[k] = v
		}
		data["activity_id"] = int64(activity.ID)
		data["description"] = activity.Description

		if err := tx.CreateNotification(ctx, &models.Notification{
			UserID:         userID,
			Type:           activity.Type,
			NotifiableType: NotifiableTask,
			NotifiableID:   int64(taskID),
			Data:           data,
		}); err != nil {
			return err
		}
	}
	return nil
}

// publish announces a stored activity. Failures are logged and counted only.
func (s *service) publish(ctx context.Context, activity *models.Activity) {
	event := events.NewEvent(activity.Type)
	event.ActivityID = int64(activity.ID)
	event.Metadata = activity.Metadata
	if activity.WorkspaceID != nil {
		event.WorkspaceID = int64(*activity.WorkspaceID)
	}
	if activity.BoardID != nil {
		event.BoardID = int64(*activity.BoardID)
	}
	if activity.TaskID != nil {
		event.TaskID = int64(*activity.TaskID)
	}
	if activity.UserID != nil {
		event.UserID = int64(*activity.UserID)
	}

	if err := events.PublishWithRetry(ctx, s.publisher, event, s.publishRetries); err != nil {
		s.metrics.IncEventsFailed()
		s.logger.Warn("failed to publish activity event",
			"activity_id", activity.ID,
			"type", activity.Type,
			"error", err)
		return
	}
	s.metrics.IncEventsPublished()
}
