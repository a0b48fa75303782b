package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/strata/pkg/config"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with configuration files",
	}

	var out string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(out, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote default configuration to %s\n", out)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&out, "out", "o", "strata.yaml", "Output path")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), a.cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
