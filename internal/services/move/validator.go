package move

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// validateRequest checks a request before any lock or row is touched
func validateRequest(req MoveRequest) error {
	if req.TaskID <= 0 {
		return ErrInvalidTaskID
	}
	if req.ColumnID <= 0 {
		return ErrInvalidColumnID
	}

	if req.AtStart && (req.AfterTaskID != nil || req.BeforeTaskID != nil) {
		return invalidDestination(req.ColumnID, "top cannot be combined with an anchor task")
	}
	for _, anchor := range []*types.TaskID{req.AfterTaskID, req.BeforeTaskID} {
		if anchor == nil {
			continue
		}
		if *anchor <= 0 {
			return ErrInvalidTaskID
		}
		if *anchor == req.TaskID {
			return invalidDestination(req.ColumnID, "task %d cannot be placed relative to itself", req.TaskID)
		}
	}
	if req.AfterTaskID != nil && req.BeforeTaskID != nil && *req.AfterTaskID == *req.BeforeTaskID {
		return invalidDestination(req.ColumnID, "after and before name the same task %d", *req.AfterTaskID)
	}
	return nil
}

// checkCrossBoard applies the configured policy to a move between boards
func (s *service) checkCrossBoard(ctx context.Context, tx database.DataStore, task *models.Task, dest *models.Column) error {
	if dest.BoardID == task.BoardID {
		return nil
	}

	switch s.cfg.CrossBoard {
	case CrossBoardAny:
		return nil

	case CrossBoardSameProject:
		from, err := tx.GetBoardByID(ctx, task.BoardID)
		if err != nil {
			return notFound(err, ErrBoardNotFound)
		}
		to, err := tx.GetBoardByID(ctx, dest.BoardID)
		if err != nil {
			return notFound(err, ErrBoardNotFound)
		}
		if from.ProjectID == to.ProjectID {
			return nil
		}
		return invalidDestination(dest.ID, "board %d belongs to another project", dest.BoardID)

	default:
		return invalidDestination(dest.ID, "column is on board %d, task is on board %d", dest.BoardID, task.BoardID)
	}
}

// checkWipLimit rejects a move into dest when it already holds count tasks
// and has no room left. Only called for moves that change column.
func checkWipLimit(dest *models.Column, count int) error {
	if dest.AcceptsAnother(count) {
		return nil
	}
	return &WipLimitExceededError{ColumnID: dest.ID, Current: count, Limit: *dest.Limit}
}

// insertionIndex resolves the request anchors against seq, the destination
// column in order with the moved task already removed. The result is the
// index the task takes: its neighbours are seq[i-1] and seq[i].
func insertionIndex(seq []models.OrderedPosition, req MoveRequest) (int, error) {
	indexOf := func(id types.TaskID) int {
		for i, row := range seq {
			if row.ID == int64(id) {
				return i
			}
		}
		return -1
	}

	after, before := -1, -1
	if req.AfterTaskID != nil {
		if after = indexOf(*req.AfterTaskID); after < 0 {
			return 0, invalidDestination(req.ColumnID, "task %d is not in this column", *req.AfterTaskID)
		}
	}
	if req.BeforeTaskID != nil {
		if before = indexOf(*req.BeforeTaskID); before < 0 {
			return 0, invalidDestination(req.ColumnID, "task %d is not in this column", *req.BeforeTaskID)
		}
	}

	switch {
	case req.AtStart:
		return 0, nil
	case after >= 0 && before >= 0:
		if before != after+1 {
			return 0, invalidDestination(req.ColumnID,
				"tasks %d and %d are not adjacent", *req.AfterTaskID, *req.BeforeTaskID)
		}
		return before, nil
	case after >= 0:
		return after + 1, nil
	case before >= 0:
		return before, nil
	default:
		return len(seq), nil
	}
}

// neighbours returns the positions around index i in seq, nil at either end
func neighbours(seq []models.OrderedPosition, i int) (prev, next *int64) {
	if i > 0 {
		p := seq[i-1].Position
		prev = &p
	}
	if i < len(seq) {
		n := seq[i].Position
		next = &n
	}
	return prev, next
}

// strictlyBetween reports whether pos already lies between prev and next
func strictlyBetween(pos int64, prev, next *int64) bool {
	if prev != nil && pos <= *prev {
		return false
	}
	if next != nil && pos >= *next {
		return false
	}
	return true
}
