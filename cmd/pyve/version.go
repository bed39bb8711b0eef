package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pointmatic/pyve/internal/pyve"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pyve version %s (%s)\n", pyve.Version, pyve.Build)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
