package column

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/services/move"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a column in order",
		Long: `List the tasks of a column in position order.

Examples:
  # Human-readable list
  lanes column list --id 3

  # JSON output for agents
  lanes column list --id 3 --json

  # Quiet mode (one task ID per line)
  lanes column list --id 3 --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Int64("id", 0, "Column ID (required)")
	cli.MarkRequired(cmd, "id")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	columnID, _ := cmd.Flags().GetInt64("id")

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	list, err := cliInstance.App.MoveService.ListOrdered(ctx, move.Scope{ColumnID: types.ColumnID(columnID)})
	if err != nil {
		return formatter.Fail(err)
	}
	view := list.Column

	if formatter.Quiet {
		for _, task := range view.Tasks {
			fmt.Printf("%d\n", task.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(view)
	}

	fmt.Print(styles.RenderColumnView(view))
	return nil
}
