package board

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lanescli "github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
	"github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestShowBoard(t *testing.T) {
	f, app := cli.SetupCLITest(t)

	done := f.CreateColumn(t, f.Board.ID, "Done", 3000, nil)
	todo := f.CreateColumn(t, f.Board.ID, "Todo", 1000, nil)
	f.CreateTask(t, todo.ID, "Plan", 1024)
	f.CreateTask(t, done.ID, "Ship", 1024)
	args := []string{"--id", fmt.Sprintf("%d", f.Board.ID)}

	t.Run("json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), append(args, "--json"))
		require.NoError(t, err)

		data := testutil.ParseJSON(t, output)["data"].(map[string]any)
		columns := data["columns"].([]any)
		require.Len(t, columns, 2)
		first := columns[0].(map[string]any)
		assert.Equal(t, "Todo", first["column"].(map[string]any)["name"])
		assert.Equal(t, "Plan", first["tasks"].([]any)[0].(map[string]any)["title"])
	})

	t.Run("quiet", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), append(args, "--quiet"))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d\n%d", todo.ID, done.ID), strings.TrimSpace(output))
	})

	t.Run("human", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ShowCmd(), args)
		require.NoError(t, err)
		assert.Contains(t, output, "Main")
		assert.Less(t, strings.Index(output, "Todo"), strings.Index(output, "Done"))
	})

	t.Run("unknown board", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ShowCmd(), []string{"--id", "9999", "--json"})
		require.Error(t, err)
		assert.Equal(t, lanescli.ExitNotFound, lanescli.ExitCode(err))
	})
}

func TestCompactBoard(t *testing.T) {
	f, app := cli.SetupCLITest(t)

	f.CreateColumn(t, f.Board.ID, "Todo", 5, nil)
	f.CreateColumn(t, f.Board.ID, "Done", 6, nil)

	output, err := cli.ExecuteCLICommand(t, app, CompactCmd(), []string{
		"--id", fmt.Sprintf("%d", f.Board.ID), "--actor", fmt.Sprintf("%d", f.User.ID), "--json",
	})
	require.NoError(t, err)

	data := testutil.ParseJSON(t, output)["data"].(map[string]any)
	assert.Equal(t, "board", data["scope"])
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, true, data["rewritten"])
}
