package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/bootstrap"
	"github.com/pointmatic/pyve/internal/configfile"
	"github.com/pointmatic/pyve/internal/direnv"
	"github.com/pointmatic/pyve/internal/gitignore"
	"github.com/pointmatic/pyve/internal/pyve"
	"github.com/pointmatic/pyve/internal/reconcile"
)

// runInit drives --init / --update / --force through the reconciler.
func runInit(projectDir string) error {
	req := reconcile.Request{
		Backend:       normalizeBackendFlag(backendFlag),
		VenvDir:       venvDirFlag,
		NoDirenv:      noDirenvFlag || settings.NoDirenv,
		AutoYes:       yesFlag || settings.AutoYes,
		Interactive:   settings.Interactive,
		AutoBootstrap: bootstrapFlag,
	}
	switch {
	case forceFlag:
		req.Mode = reconcile.ModeForce
	case updateFlag:
		req.Mode = reconcile.ModeUpdate
	}

	if req.AutoBootstrap {
		if err := maybeBootstrap(projectDir, req.Backend); err != nil {
			return err
		}
	}

	r := &reconcile.Reconciler{
		Version:  pyve.Version,
		Prompt:   &reconcile.StdinPrompter{In: os.Stdin, Out: os.Stdout},
		Out:      os.Stdout,
		Scaffold: scaffold,
	}
	outcome, err := r.Run(projectDir, req)
	if err != nil {
		return err
	}

	if outcome != reconcile.OutcomeCancel {
		color.Green("Done.")
	}
	return nil
}

// normalizeBackendFlag maps "auto" to empty so auto-detection applies
// and an existing recorded backend is never treated as a conflict.
func normalizeBackendFlag(name string) string {
	if name == "auto" {
		return ""
	}
	return name
}

// scaffold runs after the environment is created, before the config is
// written: python version recording, .gitignore entries, .envrc.
func scaffold(projectDir string, cfg *configfile.ProjectConfig, req reconcile.Request) error {
	if cfg.Backend == configfile.BackendVenv {
		if v := (&backend.Venv{}).PythonVersion(projectDir, cfg); v != "" {
			cfg.Python.Version = v
		}
	}

	if err := gitignore.Ensure(projectDir, gitignore.Entries(cfg.VenvDirectory(), cfg.Direnv.Enabled)); err != nil {
		return err
	}

	if cfg.Direnv.Enabled {
		if err := direnv.Write(projectDir, cfg); err != nil {
			return err
		}
		direnv.Allow(projectDir)
	}

	return nil
}

// maybeBootstrap downloads micromamba into the project sandbox when the
// init will need it and it is nowhere to be found.
func maybeBootstrap(projectDir, requested string) error {
	if targetBackend(projectDir, requested) != configfile.BackendMicromamba {
		return nil
	}
	if !bootstrap.Needed(projectDir) {
		return nil
	}

	fmt.Println("micromamba not found; downloading...")
	_, err := bootstrap.Run(context.Background(), projectDir, bootstrap.Options{})
	return err
}

// targetBackend resolves the backend an init would use: explicit flag,
// then recorded config, then file detection.
func targetBackend(projectDir, requested string) string {
	if requested != "" {
		return requested
	}
	if cfg, err := configfile.Load(projectDir); err == nil && cfg != nil && cfg.BackendRecognized() {
		return cfg.Backend
	}
	return backend.Detect(projectDir)
}
