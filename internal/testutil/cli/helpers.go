package cli

import (
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
)

// ParseJSONArray returns the data rows of a list command's JSON envelope
func ParseJSONArray(t *testing.T, output string) []map[string]any {
	t.Helper()

	var envelope struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal([]byte(output), &envelope); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if !envelope.Success {
		t.Fatalf("Command reported failure\nOutput: %s", output)
	}

	return envelope.Data
}

// SetupCobraCommand sets up a cobra command with args for testing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
