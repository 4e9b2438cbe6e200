package task

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/services/move"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to a column position",
		Long: `Move a task into a column, or reorder it inside its current column.

Without an anchor the task goes to the end of the column.

Examples:
  # Move to the end of column 3
  lanes task move --id 7 --column 3

  # Place directly after task 12
  lanes task move --id 7 --column 3 --after 12

  # Place between two adjacent tasks
  lanes task move --id 7 --column 3 --after 12 --before 15

  # Move to the top
  lanes task move --id 7 --column 3 --top

  # JSON output for agents
  lanes task move --id 7 --column 3 --json
`,
		RunE: runMove,
	}

	// Required flags
	cmd.Flags().Int64("id", 0, "Task ID (required)")
	cmd.Flags().Int64("column", 0, "Destination column ID (required)")
	cli.MarkRequired(cmd, "id", "column")

	// Placement
	cmd.Flags().Int64("after", 0, "Place after this task")
	cmd.Flags().Int64("before", 0, "Place before this task")
	cmd.Flags().Bool("top", false, "Place at the start of the column")
	cmd.MarkFlagsMutuallyExclusive("top", "after")
	cmd.MarkFlagsMutuallyExclusive("top", "before")

	cmd.Flags().Int64("actor", 0, "Acting user ID (defaults to "+user.ActorEnv+" or the system user)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	taskID, _ := cmd.Flags().GetInt64("id")
	columnID, _ := cmd.Flags().GetInt64("column")
	after, _ := cmd.Flags().GetInt64("after")
	before, _ := cmd.Flags().GetInt64("before")
	top, _ := cmd.Flags().GetBool("top")
	actorFlag, _ := cmd.Flags().GetInt64("actor")

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	actor, err := user.ResolveActorID(ctx, cliInstance.App.Repo(), actorFlag)
	if err != nil {
		return formatter.Usage(err.Error(), "Pass --actor with a user ID")
	}

	result, err := cliInstance.App.MoveService.RequestMove(ctx, move.MoveRequest{
		TaskID:       types.TaskID(taskID),
		ColumnID:     types.ColumnID(columnID),
		AfterTaskID:  types.TaskIDPtr(after),
		BeforeTaskID: types.TaskIDPtr(before),
		AtStart:      top,
		ActorID:      actor,
	})
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(result)
	}

	// Human-readable output
	columnName := fmt.Sprintf("column %d", result.ToColumnID)
	if col, err := cliInstance.App.Repo().GetColumnByID(ctx, result.ToColumnID); err == nil {
		columnName = col.Name
	}

	if !result.Changed {
		fmt.Printf("Task %d is already there in '%s'\n", result.TaskID, columnName)
		return nil
	}

	fmt.Println(styles.SuccessStyle.Render(
		fmt.Sprintf("Task %d moved to '%s' at position %d", result.TaskID, columnName, result.ToPosition)))
	if result.Compacted {
		fmt.Println(styles.SubtitleStyle.Render(fmt.Sprintf("'%s' was renumbered to make room", columnName)))
	}
	return nil
}
