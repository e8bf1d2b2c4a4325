package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeanpaul/shelf/internal/config"
	"github.com/jeanpaul/shelf/internal/tui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.Path()
			}
			if err := config.Save(a.cfg, path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", tui.OKStyle.Render("✓ Wrote"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	initCmd.Flags().StringVar(&path, "path", "", "destination (default "+config.Path()+")")

	cmd.AddCommand(initCmd)
	return cmd
}
