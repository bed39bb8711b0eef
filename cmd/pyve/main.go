package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pointmatic/pyve/internal/config"
	"github.com/pointmatic/pyve/internal/pyve"
)

var (
	initFlag     bool
	updateFlag   bool
	forceFlag    bool
	validateFlag bool
	purgeFlag    bool
	configFlag   bool
	versionFlag  bool

	backendFlag   string
	venvDirFlag   string
	noDirenvFlag  bool
	yesFlag       bool
	bootstrapFlag bool

	// settings is resolved once in PersistentPreRun so commands never
	// read the environment directly.
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "pyve",
	Short: "pyve - Python virtual environment manager",
	Long: `Manage per-project Python environments (venv or micromamba).
State lives in .pyve/config; pyve initializes, validates, and runs
commands inside the environment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings = config.Resolve()
		// Cosmetic only; prompting is governed by CI/auto-yes.
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			color.NoColor = true
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		projectDir, err := os.Getwd()
		if err != nil {
			fatal(err)
		}

		switch {
		case versionFlag:
			fmt.Printf("pyve version %s (%s)\n", pyve.Version, pyve.Build)
		case validateFlag:
			os.Exit(runValidate(projectDir, os.Stdout))
		case configFlag:
			if err := runConfigShow(projectDir, os.Stdout); err != nil {
				fatal(err)
			}
		case purgeFlag:
			if err := runPurge(projectDir); err != nil {
				fatal(err)
			}
		case initFlag || updateFlag || forceFlag:
			if err := runInit(projectDir); err != nil {
				fatal(err)
			}
		default:
			_ = cmd.Help()
		}
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&initFlag, "init", false, "Initialize the project environment")
	f.BoolVar(&updateFlag, "update", false, "Update configuration in place (implies --init)")
	f.BoolVar(&forceFlag, "force", false, "Purge and re-initialize (implies --init)")
	f.BoolVar(&validateFlag, "validate", false, "Validate project state (exit 0 ok, 2 warnings, 1 failures)")
	f.BoolVar(&purgeFlag, "purge", false, "Remove the environment, config, and scaffolding")
	f.BoolVar(&configFlag, "config", false, "Print the resolved project configuration")
	f.BoolVarP(&versionFlag, "version", "V", false, "Print version information")

	f.StringVar(&backendFlag, "backend", "", "Backend to use: venv, micromamba, or auto (default: auto-detect)")
	f.StringVar(&venvDirFlag, "venv-dir", "", "Virtual environment directory (default: .venv)")
	f.BoolVar(&noDirenvFlag, "no-direnv", false, "Skip .envrc generation")
	f.BoolVarP(&yesFlag, "yes", "y", false, "Answer yes to all confirmation prompts")
	f.BoolVar(&bootstrapFlag, "auto-bootstrap", false, "Download micromamba into .pyve/bin when missing")
}

// fatal prints the error to stderr and exits 1. Command layer only.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
