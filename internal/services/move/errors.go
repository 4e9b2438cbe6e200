package move

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Move-related errors
var (
	// Validation errors
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidColumnID = errors.New("invalid column ID")
	ErrInvalidBoardID  = errors.New("invalid board ID")
	ErrInvalidScope    = errors.New("exactly one of column or board must be given")

	// Lookup errors
	ErrTaskNotFound   = errors.New("task not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrBoardNotFound  = errors.New("board not found")

	// Business rule errors
	ErrInvalidDestination = errors.New("invalid destination")
	ErrWipLimitExceeded   = errors.New("WIP limit exceeded")

	// ErrMoveTimeout means the ordering locks could not be taken in time.
	// Nothing was written.
	ErrMoveTimeout = errors.New("move timed out waiting for column lock")
)

// errSourceMoved signals that the task left the column that was locked
// before the transaction started. The move is retried with fresh locks.
var errSourceMoved = errors.New("task changed column while waiting for lock")

// InvalidDestinationError rejects a move whose target cannot be used
type InvalidDestinationError struct {
	ColumnID types.ColumnID
	Reason   string
}

func (e *InvalidDestinationError) Error() string {
	return fmt.Sprintf("invalid destination column %d: %s", e.ColumnID, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDestination) match
func (e *InvalidDestinationError) Is(target error) bool {
	return target == ErrInvalidDestination
}

// WipLimitExceededError rejects a move into a column that is already full
type WipLimitExceededError struct {
	ColumnID types.ColumnID
	Current  int
	Limit    int
}

func (e *WipLimitExceededError) Error() string {
	return fmt.Sprintf("column %d is at its WIP limit (%d/%d)", e.ColumnID, e.Current, e.Limit)
}

// Is makes errors.Is(err, ErrWipLimitExceeded) match
func (e *WipLimitExceededError) Is(target error) bool {
	return target == ErrWipLimitExceeded
}

func invalidDestination(columnID types.ColumnID, format string, args ...any) error {
	return &InvalidDestinationError{ColumnID: columnID, Reason: fmt.Sprintf(format, args...)}
}

// notFound maps database.ErrNotFound onto a service sentinel, keeping both
// in the chain
func notFound(err, sentinel error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
