package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ListCmd returns the activity list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activity for a task or board, newest first",
		Long: `List activity rows for a task or a board, newest first.

Examples:
  lanes activity list --task 7
  lanes activity list --board 1 --type task.moved --limit 20
  lanes activity list --board 1 --json
`,
		RunE: runList,
	}

	cmd.Flags().Int64("task", 0, "Task ID")
	cmd.Flags().Int64("board", 0, "Board ID")
	cmd.Flags().String("type", "", "Only this activity type (e.g. task.moved)")
	cmd.Flags().Int("limit", 50, "Maximum rows to return")
	cmd.MarkFlagsOneRequired("task", "board")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	taskID, _ := cmd.Flags().GetInt64("task")
	boardID, _ := cmd.Flags().GetInt64("board")
	activityType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")

	if limit <= 0 {
		return formatter.Usage(fmt.Sprintf("--limit must be positive, got %d", limit), "")
	}

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	activities, err := cliInstance.App.ActivityService.ListActivities(ctx, database.ActivityFilter{
		TaskID:  types.TaskID(taskID),
		BoardID: types.BoardID(boardID),
		Type:    activityType,
		Limit:   limit,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, a := range activities {
			fmt.Printf("%d\n", a.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(activities)
	}

	if len(activities) == 0 {
		fmt.Println("No activity found")
		return nil
	}
	for _, a := range activities {
		fmt.Println(styles.RenderActivity(a))
	}
	return nil
}
