package cli

import (
	"errors"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/position"
	"github.com/thenoetrevino/lanes/internal/services/move"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// conflicting anchors or non-positive ids.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Task, column or board ids that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	ExitDataErr = 4

	// ExitValidation indicates a move was rejected by a rule.
	// Use for: WIP limit reached, invalid destination column.
	ExitValidation = 5

	// ExitTimeout indicates the ordering lock could not be taken in time.
	// The move can be retried.
	ExitTimeout = 6
)

// CommandError carries the process exit code for a failed command
type CommandError struct {
	Code int
	Err  error
}

func (e *CommandError) Error() string {
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *CommandError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	_, code := Classify(err)
	return code
}

// Classify maps an engine error to a machine-readable code and exit code
func Classify(err error) (string, int) {
	switch {
	case errors.Is(err, move.ErrWipLimitExceeded):
		return "WIP_LIMIT_EXCEEDED", ExitValidation
	case errors.Is(err, move.ErrInvalidDestination):
		return "INVALID_DESTINATION", ExitValidation
	case errors.Is(err, move.ErrMoveTimeout):
		return "MOVE_TIMEOUT", ExitTimeout
	case errors.Is(err, move.ErrTaskNotFound):
		return "TASK_NOT_FOUND", ExitNotFound
	case errors.Is(err, move.ErrColumnNotFound):
		return "COLUMN_NOT_FOUND", ExitNotFound
	case errors.Is(err, move.ErrBoardNotFound):
		return "BOARD_NOT_FOUND", ExitNotFound
	case errors.Is(err, database.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, move.ErrInvalidTaskID),
		errors.Is(err, move.ErrInvalidColumnID),
		errors.Is(err, move.ErrInvalidBoardID),
		errors.Is(err, move.ErrInvalidScope):
		return "INVALID_REQUEST", ExitUsage
	case errors.Is(err, position.ErrPositionExhausted):
		return "POSITION_EXHAUSTED", ExitError
	default:
		return "ERROR", ExitError
	}
}
