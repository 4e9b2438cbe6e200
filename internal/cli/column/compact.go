package column

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// CompactCmd returns the column compact subcommand
func CompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Renumber a column's tasks to even spacing",
		Long: `Rewrite task positions in a column to evenly spaced values,
keeping their order. A column that is already evenly spaced is left untouched.

Examples:
  lanes column compact --id 3
  lanes column compact --id 3 --json
`,
		RunE: runCompact,
	}

	cmd.Flags().Int64("id", 0, "Column ID (required)")
	cli.MarkRequired(cmd, "id")
	cmd.Flags().Int64("actor", 0, "Acting user ID (defaults to "+user.ActorEnv+" or the system user)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCompact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	columnID, _ := cmd.Flags().GetInt64("id")
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

	result, err := cliInstance.App.MoveService.Compact(ctx, types.ColumnID(columnID), actor)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(result)
	}

	if !result.Rewritten {
		fmt.Printf("Column %d is already evenly spaced (%d tasks)\n", result.ID, result.Count)
		return nil
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Renumbered %d tasks in column %d", result.Count, result.ID)))
	return nil
}
