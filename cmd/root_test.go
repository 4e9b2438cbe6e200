package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

func TestIsUsageError(t *testing.T) {
	assert.True(t, isUsageError(errors.New(`required flag(s) "id" not set`)))
	assert.True(t, isUsageError(errors.New(`unknown flag: --nope`)))
	assert.False(t, isUsageError(errors.New("database is locked")))
}

func TestExecute_ConfigShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("moves:\n  cross_board: any\n"), 0o600))
	t.Setenv("LANES_LOG_OUTPUT", "stderr")

	rootCmd.SetArgs([]string{"--config", path, "config", "show"})
	t.Cleanup(func() { configPath = "" })

	var code int
	output := testutil.CaptureOutput(t, func() {
		code = Execute(context.Background())
	})

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, output, "cross_board: any")
}

func TestExecute_MissingRequiredFlag(t *testing.T) {
	t.Setenv("LANES_LOG_OUTPUT", "stderr")
	t.Setenv("LANES_DB_PATH", filepath.Join(t.TempDir(), "lanes.db"))

	rootCmd.SetArgs([]string{"column", "list"})
	assert.Equal(t, cli.ExitUsage, Execute(context.Background()))
}
