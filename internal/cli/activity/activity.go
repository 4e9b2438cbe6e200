package activity

import (
	"github.com/spf13/cobra"
)

// ActivityCmd returns the activity parent command
func ActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Read the activity trail",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(NotificationsCmd())

	return cmd
}
