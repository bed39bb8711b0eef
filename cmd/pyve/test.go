package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pointmatic/pyve/internal/testenv"
)

var testCmd = &cobra.Command{
	Use:   "test [pytest args...]",
	Short: "Run pytest from the reserved test-runner environment",
	Long: `Runs pytest from .pyve/testenv/venv, creating the runner
environment (and installing pytest) on first use. The runner is
independent of the project environment and survives --force and
--purge.`,
	Run: func(cmd *cobra.Command, args []string) {
		projectDir, err := os.Getwd()
		if err != nil {
			fatal(err)
		}

		if err := testenv.Ensure(projectDir); err != nil {
			fatal(err)
		}

		os.Exit(execPassthrough(projectDir, testenv.PytestArgv(projectDir, args), nil))
	},
}

func init() {
	testCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(testCmd)
}
