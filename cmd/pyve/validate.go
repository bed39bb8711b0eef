package main

import (
	"fmt"
	"io"

	"github.com/pointmatic/pyve/internal/pyve"
	"github.com/pointmatic/pyve/internal/ui"
	"github.com/pointmatic/pyve/internal/validate"
)

// runValidate prints the full report and returns the exit code:
// 0 all pass, 2 warnings only, 1 any failure.
func runValidate(projectDir string, w io.Writer) int {
	report := validate.Run(projectDir, pyve.Version)
	printReport(w, report)
	return report.ExitCode()
}

func printReport(w io.Writer, report *validate.Report) {
	for _, c := range report.Checks {
		fmt.Fprintf(w, "%s %s: %s\n", statusIcon(c.Status), c.Name, c.Message)
		if c.Detail != "" {
			fmt.Fprintf(w, "  %s%s\n", ui.TreeLast, ui.RenderMuted(c.Detail))
		}
	}

	pass, warn, fail := report.Counts()
	fmt.Fprintf(w, "\n%d passed, %d warnings, %d failures\n", pass, warn, fail)
}

func statusIcon(status string) string {
	switch status {
	case validate.StatusWarn:
		return ui.RenderWarnIcon()
	case validate.StatusFail:
		return ui.RenderFailIcon()
	default:
		return ui.RenderPassIcon()
	}
}
