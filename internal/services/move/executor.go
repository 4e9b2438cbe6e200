package move

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/services/activity"
	"github.com/thenoetrevino/lanes/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxSourceRetries bounds how often a move is retried when the task changes
// column between the unlocked read and the locked transaction
const maxSourceRetries = 3

// MoveRequest asks for a task to be placed in a column.
// With no anchor the task goes to the end of the column.
type MoveRequest struct {
	TaskID       types.TaskID
	ColumnID     types.ColumnID
	AfterTaskID  *types.TaskID
	BeforeTaskID *types.TaskID
	AtStart      bool
	ActorID      *types.UserID
}

// MoveResult describes the committed outcome of a move
type MoveResult struct {
	TaskID       types.TaskID   `json:"task_id"`
	FromColumnID types.ColumnID `json:"from_column_id"`
	FromBoardID  types.BoardID  `json:"from_board_id"`
	FromPosition int64          `json:"from_position"`
	ToColumnID   types.ColumnID `json:"to_column_id"`
	ToBoardID    types.BoardID  `json:"to_board_id"`
	ToPosition   int64          `json:"to_position"`
	Compacted    bool           `json:"compacted"`
	Changed      bool           `json:"changed"`
}

// GetID returns the moved task id (used by quiet CLI output)
func (r *MoveResult) GetID() int64 {
	return int64(r.TaskID)
}

// RequestMove moves a task to a column position atomically. Activity is
// recorded after the locks are released and never fails the move.
func (s *service) RequestMove(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	ctx, span := s.tracer.Start(ctx, "move.RequestMove", trace.WithAttributes(
		attribute.Int64("task.id", int64(req.TaskID)),
		attribute.Int64("column.id", int64(req.ColumnID)),
	))

	result, err := s.requestMove(ctx, req)
	s.countOutcome(result, err)

	if err != nil {
		s.logger.Debug("move rejected", "task_id", req.TaskID, "column_id", req.ColumnID, "error", err)
		endSpan(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("move.from_column_id", int64(result.FromColumnID)),
		attribute.Int64("move.to_position", result.ToPosition),
		attribute.Bool("move.compacted", result.Compacted),
		attribute.Bool("move.changed", result.Changed),
	)
	if result.Changed {
		s.recordMove(ctx, req.ActorID, result)
	}
	endSpan(span, nil)
	return result, nil
}

func (s *service) requestMove(ctx context.Context, req MoveRequest) (*MoveResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		task, err := s.repo.GetTaskByID(ctx, req.TaskID)
		if err != nil {
			return nil, notFound(err, ErrTaskNotFound)
		}

		result, err := s.moveLocked(ctx, req, task.ColumnID)
		if errors.Is(err, errSourceMoved) && attempt < maxSourceRetries {
			s.logger.Debug("task changed column before lock, retrying", "task_id", req.TaskID, "attempt", attempt+1)
			continue
		}
		return result, err
	}
}

// moveLocked holds the source and destination column locks for the duration
// of one transaction
func (s *service) moveLocked(ctx context.Context, req MoveRequest, source types.ColumnID) (*MoveResult, error) {
	release, err := s.acquire(ctx, lock.ColumnKey(source), lock.ColumnKey(req.ColumnID))
	if err != nil {
		return nil, err
	}
	defer release()

	var result *MoveResult
	err = s.inTx(ctx, func(tx database.DataStore) error {
		var err error
		result, err = s.execute(ctx, tx, req, source)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// execute validates and applies a move inside tx
func (s *service) execute(ctx context.Context, tx database.DataStore, req MoveRequest, source types.ColumnID) (*MoveResult, error) {
	task, err := tx.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound)
	}
	if task.ColumnID != source {
		return nil, errSourceMoved
	}

	dest, err := tx.GetColumnByID(ctx, req.ColumnID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, invalidDestination(req.ColumnID, "column does not exist")
		}
		return nil, err
	}
	if err := s.checkCrossBoard(ctx, tx, task, dest); err != nil {
		return nil, err
	}

	seq, err := s.destinationSequence(ctx, tx, dest.ID, task.ID)
	if err != nil {
		return nil, err
	}
	if dest.ID != task.ColumnID {
		if err := checkWipLimit(dest, len(seq)); err != nil {
			return nil, err
		}
	}

	idx, err := insertionIndex(seq, req)
	if err != nil {
		return nil, err
	}
	prev, next := neighbours(seq, idx)

	result := &MoveResult{
		TaskID:       task.ID,
		FromColumnID: task.ColumnID,
		FromBoardID:  task.BoardID,
		FromPosition: task.Position,
		ToColumnID:   dest.ID,
		ToBoardID:    dest.BoardID,
	}

	if dest.ID == task.ColumnID && strictlyBetween(task.Position, prev, next) {
		result.ToPosition = task.Position
		return result, nil
	}

	pos, err := s.alloc.Between(prev, next)
	if errors.Is(err, position.ErrPositionExhausted) {
		pos, err = s.allocateAfterCompaction(ctx, tx, req, dest.ID, task.ID)
		result.Compacted = true
	}
	if err != nil {
		return nil, fmt.Errorf("failed to place task %d in column %d: %w", task.ID, dest.ID, err)
	}

	if err := tx.MoveTask(ctx, task.ID, dest.ID, dest.BoardID, pos); err != nil {
		return nil, err
	}

	result.ToPosition = pos
	result.Changed = true
	return result, nil
}

// allocateAfterCompaction renumbers the destination column inside tx and
// resolves the anchors again against the fresh positions. A second
// exhaustion is returned to the caller.
func (s *service) allocateAfterCompaction(ctx context.Context, tx database.DataStore, req MoveRequest, columnID types.ColumnID, taskID types.TaskID) (int64, error) {
	if _, _, err := s.compactColumn(ctx, tx, columnID); err != nil {
		return 0, err
	}
	s.metrics.IncCompactions(true)
	s.logger.Info("compacted column to make room", "column_id", columnID, "task_id", taskID)

	seq, err := s.destinationSequence(ctx, tx, columnID, taskID)
	if err != nil {
		return 0, err
	}
	idx, err := insertionIndex(seq, req)
	if err != nil {
		return 0, err
	}
	return s.alloc.Between(neighbours(seq, idx))
}

// destinationSequence returns the column's tasks in order, without taskID
func (s *service) destinationSequence(ctx context.Context, tx database.DataStore, columnID types.ColumnID, taskID types.TaskID) ([]models.OrderedPosition, error) {
	rows, err := tx.ListTaskPositions(ctx, columnID)
	if err != nil {
		return nil, err
	}
	seq := rows[:0]
	for _, row := range rows {
		if row.ID != int64(taskID) {
			seq = append(seq, row)
		}
	}
	return seq, nil
}

func (s *service) recordMove(ctx context.Context, actor *types.UserID, r *MoveResult) {
	if s.recorder == nil {
		return
	}
	// the move has committed; a cancelled caller must not lose its trail
	ctx = context.WithoutCancel(ctx)

	_, err := s.recorder.RecordMove(ctx, actor, activity.Move{
		TaskID:       r.TaskID,
		FromColumnID: r.FromColumnID,
		ToColumnID:   r.ToColumnID,
		FromBoardID:  r.FromBoardID,
		ToBoardID:    r.ToBoardID,
		FromPosition: r.FromPosition,
		ToPosition:   r.ToPosition,
		Compacted:    r.Compacted,
	})
	if err != nil {
		s.metrics.IncActivityFailures()
		s.logger.Warn("failed to record move activity", "task_id", r.TaskID, "error", err)
	}
}

func (s *service) countOutcome(r *MoveResult, err error) {
	switch {
	case err == nil && r.Changed:
		s.metrics.IncMovesCommitted()
	case err == nil:
		s.metrics.IncMovesNoop()
	case errors.Is(err, ErrInvalidDestination), errors.Is(err, ErrWipLimitExceeded):
		s.metrics.IncMovesRejected()
	}
}
