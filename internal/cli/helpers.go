package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// FormatterFor builds the formatter selected by the output flags
func FormatterFor(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// MarkRequired marks flags as required, logging programmer errors
func MarkRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}
}

// Open returns the CLI for cmd. Initialization failures are reported through
// the formatter. The caller must call Close.
func Open(cmd *cobra.Command, formatter *OutputFormatter) (*CLI, error) {
	cliInstance, err := GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return nil, &CommandError{Code: ExitError, Err: err}
	}
	return cliInstance, nil
}

// CloseCLI closes c, logging failures
func CloseCLI(c *CLI) {
	if err := c.Close(); err != nil {
		slog.Error("failed to close CLI", "error", err)
	}
}
