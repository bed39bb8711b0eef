package main

import (
	"fmt"
	"io"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/configfile"
)

// runConfigShow prints the resolved project configuration, defaults
// filled in.
func runConfigShow(projectDir string, w io.Writer) error {
	cfg, err := configfile.Load(projectDir)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("project not initialized (no .pyve/config)")
	}

	version := cfg.PyveVersion
	if version == "" {
		version = "not recorded (legacy)"
	}

	fmt.Fprintf(w, "backend:      %s\n", cfg.Backend)
	fmt.Fprintf(w, "pyve version: %s\n", version)
	switch cfg.Backend {
	case configfile.BackendMicromamba:
		fmt.Fprintf(w, "environment:  %s\n", cfg.EnvironmentName(projectDir))
		if v := (&backend.Micromamba{}).Version(projectDir); v != "" {
			fmt.Fprintf(w, "micromamba:   %s\n", v)
		}
	default:
		fmt.Fprintf(w, "venv dir:     %s\n", cfg.VenvDirectory())
	}
	if cfg.Python.Version != "" {
		fmt.Fprintf(w, "python:       %s\n", cfg.Python.Version)
	}
	fmt.Fprintf(w, "direnv:       %s\n", enabledWord(cfg.Direnv.Enabled))

	return nil
}

func enabledWord(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
