package cli

import (
	"testing"

	"github.com/thenoetrevino/lanes/internal/app"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// SetupCLITest creates an in-memory fixture and an App over the same database.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T, opts ...app.Option) (*testutil.Fixture, *app.App) {
	t.Helper()
	f := testutil.NewFixture(t)
	appInstance := app.New(f.DB, opts...)
	t.Cleanup(func() { _ = appInstance.Close() })
	return f, appInstance
}
