package activity

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/move"
	"github.com/thenoetrevino/lanes/internal/testutil/cli"
)

func TestListActivity(t *testing.T) {
	ctx := context.Background()
	f, app := cli.SetupCLITest(t)

	todo := f.CreateColumn(t, f.Board.ID, "Todo", 1024, nil)
	doing := f.CreateColumn(t, f.Board.ID, "Doing", 2048, nil)
	task := f.CreateTask(t, todo.ID, "Write docs", 1024)

	_, err := app.MoveService.RequestMove(ctx, move.MoveRequest{TaskID: task.ID, ColumnID: doing.ID, ActorID: &f.User.ID})
	require.NoError(t, err)
	_, err = app.MoveService.Compact(ctx, doing.ID, &f.User.ID)
	require.NoError(t, err)

	t.Run("by task", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--task", fmt.Sprintf("%d", task.ID), "--json"})
		require.NoError(t, err)

		rows := cli.ParseJSONArray(t, output)
		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, models.ActivityTaskMoved, row["type"])
		assert.Equal(t, `moved "Write docs" from "Todo" to "Doing"`, row["description"])
	})

	t.Run("by board and type", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{
			"--board", fmt.Sprintf("%d", f.Board.ID), "--type", models.ActivityTaskMoved, "--quiet",
		})
		require.NoError(t, err)
		assert.Len(t, strings.Fields(output), 1)
	})

	t.Run("human", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--board", fmt.Sprintf("%d", f.Board.ID)})
		require.NoError(t, err)
		assert.Contains(t, output, "task.moved")
	})

	t.Run("requires a scope", func(t *testing.T) {
		_, err := cli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
		assert.Error(t, err)
	})
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()
	f, app := cli.SetupCLITest(t)

	bob := f.CreateUser(t, "bob")
	todo := f.CreateColumn(t, f.Board.ID, "Todo", 1024, nil)
	doing := f.CreateColumn(t, f.Board.ID, "Doing", 2048, nil)
	task := f.CreateTask(t, todo.ID, "Review", 1024)
	require.NoError(t, f.Repo.AssignUser(ctx, task.ID, bob.ID, &f.User.ID))

	_, err := app.MoveService.RequestMove(ctx, move.MoveRequest{TaskID: task.ID, ColumnID: doing.ID, ActorID: &f.User.ID})
	require.NoError(t, err)

	output, err := cli.ExecuteCLICommand(t, app, NotificationsCmd(), []string{"--user", fmt.Sprintf("%d", bob.ID), "--unread", "--json"})
	require.NoError(t, err)

	rows := cli.ParseJSONArray(t, output)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ActivityTaskMoved, rows[0]["type"])

	output, err = cli.ExecuteCLICommand(t, app, NotificationsCmd(), []string{"--user", fmt.Sprintf("%d", f.User.ID), "--json"})
	require.NoError(t, err)
	assert.Empty(t, cli.ParseJSONArray(t, output))
}
