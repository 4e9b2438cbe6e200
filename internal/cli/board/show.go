package board

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/services/move"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board's columns and tasks in order",
		Long: `Show every column of a board in position order, each with its tasks.

Examples:
  lanes board show --id 1
  lanes board show --id 1 --json

  # Quiet mode (column IDs in order)
  lanes board show --id 1 --quiet
`,
		RunE: runShow,
	}

	cmd.Flags().Int64("id", 0, "Board ID (required)")
	cli.MarkRequired(cmd, "id")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	boardID, _ := cmd.Flags().GetInt64("id")

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	list, err := cliInstance.App.MoveService.ListOrdered(ctx, move.Scope{BoardID: types.BoardID(boardID)})
	if err != nil {
		return formatter.Fail(err)
	}
	view := list.Board

	if formatter.Quiet {
		for _, col := range view.Columns {
			fmt.Printf("%d\n", col.Column.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(view)
	}

	fmt.Print(styles.RenderBoardView(view))
	return nil
}
