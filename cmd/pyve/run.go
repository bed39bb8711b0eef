package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/configfile"
)

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Run a command inside the project environment",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectDir, err := os.Getwd()
		if err != nil {
			fatal(err)
		}

		cfg, err := configfile.Load(projectDir)
		if err != nil {
			fatal(err)
		}
		if cfg == nil {
			fatal(fmt.Errorf("project not initialized. Run 'pyve --init' first"))
		}

		b, err := backend.For(cfg.Backend)
		if err != nil {
			fatal(err)
		}

		argv, env, err := b.Command(projectDir, cfg, args)
		if err != nil {
			fatal(err)
		}

		os.Exit(execPassthrough(projectDir, argv, env))
	},
}

func init() {
	// Flags after the command name belong to the command, not pyve.
	runCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(runCmd)
}

// execPassthrough runs argv with stdio attached and returns the child's
// exit code. Failure to start at all is 127, shell convention.
func execPassthrough(dir string, argv, extraEnv []string) int {
	c := exec.Command(argv[0], argv[1:]...) // #nosec G204 - argv is the user's own command line
	c.Dir = dir
	c.Env = append(os.Environ(), extraEnv...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 127
	}
	return 0
}
