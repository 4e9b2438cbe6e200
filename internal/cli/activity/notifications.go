package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/types"
)

// NotificationsCmd returns the activity notifications subcommand
func NotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications derived from activity for a user",
		Long: `List the notifications created for a user when tasks they are
assigned to were moved by someone else.

Examples:
  lanes activity notifications --user 2
  lanes activity notifications --user 2 --unread --json
`,
		RunE: runNotifications,
	}

	cmd.Flags().Int64("user", 0, "User ID (required)")
	cli.MarkRequired(cmd, "user")
	cmd.Flags().Bool("unread", false, "Only unread notifications")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runNotifications(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	userID, _ := cmd.Flags().GetInt64("user")
	unread, _ := cmd.Flags().GetBool("unread")

	cliInstance, err := cli.Open(cmd, formatter)
	if err != nil {
		return err
	}
	defer cli.CloseCLI(cliInstance)

	notifications, err := cliInstance.App.ActivityService.ListNotifications(ctx, types.UserID(userID), unread)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, n := range notifications {
			fmt.Printf("%d\n", n.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.Success(notifications)
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}
	for _, n := range notifications {
		description, _ := n.Data["description"].(string)
		marker := "•"
		if n.IsRead() {
			marker = " "
		}
		fmt.Printf("%s %s  %s\n", marker, styles.LabelStyle.Render(n.Type), description)
	}
	return nil
}
