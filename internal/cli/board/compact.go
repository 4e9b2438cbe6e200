package board

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/types"
	"github.com/thenoetrevino/lanes/internal/user"
)

// CompactCmd returns the board compact subcommand
func CompactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact",
		Short: "Renumber a board's columns to even spacing",
		Long: `Rewrite column positions on a board to evenly spaced values,
keeping their order. Task positions are not touched; use 'lanes column compact'.

Examples:
  lanes board compact --id 1
`,
		RunE: runCompact,
	}

	cmd.Flags().Int64("id", 0, "Board ID (required)")
	cli.MarkRequired(cmd, "id")
	cmd.Flags().Int64("actor", 0, "Acting user ID (defaults to "+user.ActorEnv+" or the system user)")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runCompact(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	boardID, _ := cmd.Flags().GetInt64("id")
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

	result, err := cliInstance.App.MoveService.CompactBoard(ctx, types.BoardID(boardID), actor)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet || formatter.JSON {
		return formatter.Success(result)
	}

	if !result.Rewritten {
		fmt.Printf("Board %d columns are already evenly spaced (%d columns)\n", result.ID, result.Count)
		return nil
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Renumbered %d columns on board %d", result.Count, result.ID)))
	return nil
}
