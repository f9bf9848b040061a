package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chexiongsheng/InvokeTracker/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show invoketracker build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "invoketracker %s\n", version.Version)
		if version.GitCommit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", version.BuildDate)
		}
		return nil
	},
}
