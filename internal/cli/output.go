package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/lanes/internal/services/move"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		if idGetter, ok := data.(interface{ GetID() int64 }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err in the current output mode and returns it wrapped with
// its exit code
func (f *OutputFormatter) Fail(err error) error {
	code, exit := Classify(err)
	if fmtErr := f.ErrorWithSuggestion(code, err.Error(), suggestionFor(err)); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CommandError{Code: exit, Err: err}
}

// Usage reports a flag problem and returns an ExitUsage error
func (f *OutputFormatter) Usage(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("USAGE", message, suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &CommandError{Code: ExitUsage, Err: errors.New(message)}
}

func suggestionFor(err error) string {
	var wip *move.WipLimitExceededError
	switch {
	case errors.As(err, &wip):
		return fmt.Sprintf("Move a task out of column %d or raise its limit", wip.ColumnID)
	case errors.Is(err, move.ErrMoveTimeout):
		return "Another move holds the column; retry the command"
	default:
		return ""
	}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	fmt.Printf("%+v\n", data)
	return nil
}
