package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pointmatic/pyve/internal/pyve"
	"github.com/pointmatic/pyve/internal/ui"
	"github.com/pointmatic/pyve/internal/validate"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check project environment health",
	Long: `Run the validation checks in a human-oriented report. Unlike
--validate, an uninitialized project is a note, not a failure.`,
	Run: func(cmd *cobra.Command, args []string) {
		projectDir, err := os.Getwd()
		if err != nil {
			fatal(err)
		}

		fmt.Println(ui.RenderCategory("pyve doctor"))
		fmt.Println()

		if !pyve.IsInitialized(projectDir) {
			fmt.Printf("%s Project not initialized. Run 'pyve --init' to get started.\n", ui.RenderInfoIcon())
			return
		}

		report := validate.Run(projectDir, pyve.Version)
		printReport(os.Stdout, report)
		os.Exit(report.ExitCode())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
