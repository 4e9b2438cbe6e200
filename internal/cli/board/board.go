package board

import (
	"github.com/spf13/cobra"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show and renumber boards",
	}

	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CompactCmd())

	return cmd
}
