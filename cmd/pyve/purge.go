package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/configfile"
	"github.com/pointmatic/pyve/internal/direnv"
	"github.com/pointmatic/pyve/internal/pyve"
	"github.com/pointmatic/pyve/internal/reconcile"
)

// runPurge removes the environment, config, and generated scaffolding.
// The reserved .pyve/testenv subpath always survives.
func runPurge(projectDir string) error {
	cfg, err := configfile.Load(projectDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("project not initialized (nothing to purge)")
	}

	if !(yesFlag || settings.AutoYes) {
		p := &reconcile.StdinPrompter{In: os.Stdin, Out: os.Stdout}
		ok, err := p.Confirm("This will delete the environment and pyve configuration. Continue? (y/n): ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Purge cancelled.")
			return nil
		}
	}

	if cfg.BackendRecognized() {
		b, err := backend.For(cfg.Backend)
		if err != nil {
			return err
		}
		fmt.Printf("Purging %s environment...\n", cfg.Backend)
		if err := b.Purge(projectDir, cfg); err != nil {
			return err
		}
	}

	if err := removeGeneratedEnvrc(projectDir); err != nil {
		return err
	}
	if err := removePyveState(projectDir); err != nil {
		return err
	}

	color.Green("Purge complete.")
	return nil
}

// removeGeneratedEnvrc deletes .envrc only when pyve wrote it; a
// user-authored file is left alone.
func removeGeneratedEnvrc(projectDir string) error {
	path := filepath.Join(projectDir, direnv.EnvrcName)
	data, err := os.ReadFile(path) // #nosec G304 - path derived from project dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if strings.HasPrefix(string(data), "# Generated by pyve") {
		return os.Remove(path)
	}
	return nil
}

// removePyveState empties .pyve except the reserved testenv subpath.
func removePyveState(projectDir string) error {
	dir := pyve.Dir(projectDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.Name() == pyve.TestenvDirName {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
	}

	return nil
}
