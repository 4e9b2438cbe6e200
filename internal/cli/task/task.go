package task

import (
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Move and reorder tasks",
	}

	cmd.AddCommand(MoveCmd())

	return cmd
}
