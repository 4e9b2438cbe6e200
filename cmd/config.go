package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/config"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(out))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the user config directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().Save(); err != nil {
				return &cli.CommandError{Code: cli.ExitError, Err: err}
			}
			fmt.Println("Configuration written")
			return nil
		},
	})

	return cmd
}

func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := cli.ConfigFromContext(cmd.Context()); ok {
		return cfg, nil
	}
	return config.Load()
}
