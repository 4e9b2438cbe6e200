package column

import (
	"github.com/spf13/cobra"
)

// ColumnCmd returns the column parent command
func ColumnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Inspect and renumber columns",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CompactCmd())

	return cmd
}
