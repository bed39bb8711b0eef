// Package backend abstracts the environment technologies pyve manages:
// standard venvs created with `python -m venv`, and micromamba
// environments driven by environment.yml.
package backend

import (
	"fmt"

	"github.com/pointmatic/pyve/internal/configfile"
)

// Backend creates, inspects, and destroys one kind of Python
// environment for a project directory.
type Backend interface {
	// Name is the config-file backend identifier (venv | micromamba).
	Name() string

	// Create builds the environment and installs declared dependencies.
	Create(projectDir string, cfg *configfile.ProjectConfig) error

	// Purge destroys the environment. Must not touch anything under
	// the reserved .pyve/testenv subpath.
	Purge(projectDir string, cfg *configfile.ProjectConfig) error

	// Exists reports whether the environment is present on disk.
	Exists(projectDir string, cfg *configfile.ProjectConfig) bool

	// Command returns argv for running a command inside the
	// environment, plus extra environment variables to set.
	Command(projectDir string, cfg *configfile.ProjectConfig, args []string) (argv []string, env []string, err error)
}

// For returns the backend implementation for a config name.
func For(name string) (Backend, error) {
	switch name {
	case configfile.BackendVenv:
		return &Venv{}, nil
	case configfile.BackendMicromamba:
		return &Micromamba{}, nil
	default:
		return nil, fmt.Errorf("unrecognized backend %q (expected venv or micromamba)", name)
	}
}
