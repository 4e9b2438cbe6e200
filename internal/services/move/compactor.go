package move

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/lock"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/services/activity"
	"github.com/thenoetrevino/lanes/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Compaction scopes
const (
	ScopeColumn = "column"
	ScopeBoard  = "board"
)

// CompactResult reports what a renumbering did
type CompactResult struct {
	Scope     string        `json:"scope"`
	ID        int64         `json:"id"`
	BoardID   types.BoardID `json:"board_id"`
	Count     int           `json:"count"`
	Rewritten bool          `json:"rewritten"`
}

// GetID returns the compacted column or board id
func (r *CompactResult) GetID() int64 {
	return r.ID
}

// Compact renumbers the tasks of a column to the canonical stride,
// preserving their order. A column already in canonical form is untouched.
func (s *service) Compact(ctx context.Context, columnID types.ColumnID, actor *types.UserID) (*CompactResult, error) {
	ctx, span := s.tracer.Start(ctx, "move.Compact", trace.WithAttributes(
		attribute.Int64("column.id", int64(columnID)),
	))

	result, err := s.compact(ctx, columnID)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("compact.rewritten", result.Rewritten), attribute.Int("compact.count", result.Count))

	if result.Rewritten {
		s.metrics.IncCompactions(false)
		s.recordCompaction(ctx, actor, activity.Compaction{
			BoardID:  result.BoardID,
			ColumnID: columnID,
			Count:    result.Count,
		})
	}
	endSpan(span, nil)
	return result, nil
}

func (s *service) compact(ctx context.Context, columnID types.ColumnID) (*CompactResult, error) {
	if columnID <= 0 {
		return nil, ErrInvalidColumnID
	}
	column, err := s.repo.GetColumnByID(ctx, columnID)
	if err != nil {
		return nil, notFound(err, ErrColumnNotFound)
	}

	release, err := s.acquire(ctx, lock.ColumnKey(columnID))
	if err != nil {
		return nil, err
	}
	defer release()

	result := &CompactResult{Scope: ScopeColumn, ID: int64(columnID), BoardID: column.BoardID}
	err = s.inTx(ctx, func(tx database.DataStore) error {
		var err error
		result.Count, result.Rewritten, err = s.compactColumn(ctx, tx, columnID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompactBoard renumbers the columns of a board, preserving their order
func (s *service) CompactBoard(ctx context.Context, boardID types.BoardID, actor *types.UserID) (*CompactResult, error) {
	ctx, span := s.tracer.Start(ctx, "move.CompactBoard", trace.WithAttributes(
		attribute.Int64("board.id", int64(boardID)),
	))

	result, err := s.compactBoard(ctx, boardID)
	if err != nil {
		endSpan(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("compact.rewritten", result.Rewritten), attribute.Int("compact.count", result.Count))

	if result.Rewritten {
		s.metrics.IncCompactions(false)
		s.recordCompaction(ctx, actor, activity.Compaction{BoardID: boardID, Count: result.Count})
	}
	endSpan(span, nil)
	return result, nil
}

func (s *service) compactBoard(ctx context.Context, boardID types.BoardID) (*CompactResult, error) {
	if boardID <= 0 {
		return nil, ErrInvalidBoardID
	}
	if _, err := s.repo.GetBoardByID(ctx, boardID); err != nil {
		return nil, notFound(err, ErrBoardNotFound)
	}

	release, err := s.acquire(ctx, lock.BoardKey(boardID))
	if err != nil {
		return nil, err
	}
	defer release()

	result := &CompactResult{Scope: ScopeBoard, ID: int64(boardID), BoardID: boardID}
	err = s.inTx(ctx, func(tx database.DataStore) error {
		rows, err := tx.ListColumnPositions(ctx, boardID)
		if err != nil {
			return err
		}
		result.Count = len(rows)
		result.Rewritten, err = renumber(s.alloc, rows, func(id, pos int64) error {
			return tx.SetColumnPosition(ctx, types.ColumnID(id), pos)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// compactColumn renumbers a column inside tx. The caller holds the column lock.
func (s *service) compactColumn(ctx context.Context, tx database.DataStore, columnID types.ColumnID) (int, bool, error) {
	rows, err := tx.ListTaskPositions(ctx, columnID)
	if err != nil {
		return 0, false, err
	}
	rewritten, err := renumber(s.alloc, rows, func(id, pos int64) error {
		return tx.SetTaskPosition(ctx, types.TaskID(id), pos)
	})
	return len(rows), rewritten, err
}

// renumber rewrites rows (already in display order) to alloc.Sequence.
// Every row is first parked outside both the current and the target range,
// so a unique (scope, position) index holds after each single write.
func renumber(alloc position.Allocator, rows []models.OrderedPosition, set func(id, pos int64) error) (bool, error) {
	current := make([]int64, len(rows))
	for i, row := range rows {
		current[i] = row.Position
	}
	if alloc.IsCanonical(current) {
		return false, nil
	}

	target := alloc.Sequence(len(rows))
	park, ok := position.ParkingStart(current, target)
	if !ok {
		return false, position.ErrPositionExhausted
	}

	for i, row := range rows {
		if err := set(row.ID, park+int64(i)); err != nil {
			return false, err
		}
	}
	for i, row := range rows {
		if err := set(row.ID, target[i]); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (s *service) recordCompaction(ctx context.Context, actor *types.UserID, c activity.Compaction) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.RecordCompaction(context.WithoutCancel(ctx), actor, c); err != nil {
		s.metrics.IncActivityFailures()
		s.logger.Warn("failed to record compaction activity", "board_id", c.BoardID, "column_id", c.ColumnID, "error", err)
	}
}
