package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/activity"
	"github.com/thenoetrevino/lanes/internal/cli/board"
	"github.com/thenoetrevino/lanes/internal/cli/column"
	"github.com/thenoetrevino/lanes/internal/cli/seed"
	"github.com/thenoetrevino/lanes/internal/cli/task"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "lanes",
	Short: "Lanes - kanban ordering and move engine",
	Long: `Lanes keeps task and column order on kanban boards: it moves tasks
between columns atomically, enforces WIP limits, renumbers crowded
columns and records an activity trail for every change.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lanes/config.yaml)")

	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(activity.ActivityCmd())
	rootCmd.AddCommand(seed.SeedCmd())
	rootCmd.AddCommand(configCmd())
}

// setup loads configuration and logging once for every subcommand
func setup(cmd *cobra.Command, args []string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return &cli.CommandError{Code: cli.ExitUsage, Err: err}
	}

	if err := logging.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(cli.WithConfig(ctx, cfg))
	return nil
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		// Errors already reported by a command carry a CommandError;
		// everything else comes from cobra itself
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			return cli.ExitUsage
		}
	}
	return cli.ExitCode(err)
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"required flag", "unknown flag", "unknown shorthand flag", "unknown command", "invalid argument", "if any flags in the group", "at least one of the flags"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
