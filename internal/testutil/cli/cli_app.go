package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/app"
	lanescli "github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app travels on the context so GetCLIFromContext reuses the test database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	SetupCobraCommand(cmd, args)
	ctx := lanescli.WithApp(context.Background(), testApp)
	cmd.SetContext(ctx)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}
