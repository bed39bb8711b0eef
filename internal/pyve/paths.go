// Package pyve provides core project layout constants and path resolution.
package pyve

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the project state directory created by init.
	DirName = ".pyve"

	// ConfigFileName is the project config file inside DirName.
	ConfigFileName = "config"

	// DefaultVenvDir is the venv location unless overridden in config.
	DefaultVenvDir = ".venv"

	// TestenvDirName is the reserved subpath for the test-runner
	// environment. Purge and force re-init must never touch it.
	TestenvDirName = "testenv"

	// BinDirName holds project-sandboxed tool binaries (bootstrapped
	// micromamba lives at .pyve/bin/micromamba).
	BinDirName = "bin"
)

// Dir returns the .pyve directory for a project root.
func Dir(projectDir string) string {
	return filepath.Join(projectDir, DirName)
}

// ConfigPath returns the path of the project config file.
func ConfigPath(projectDir string) string {
	return filepath.Join(projectDir, DirName, ConfigFileName)
}

// TestenvDir returns the reserved test-runner environment directory.
func TestenvDir(projectDir string) string {
	return filepath.Join(projectDir, DirName, TestenvDirName)
}

// BinDir returns the project-local tool binary directory.
func BinDir(projectDir string) string {
	return filepath.Join(projectDir, DirName, BinDirName)
}

// IsInitialized reports whether the project has a .pyve config file.
// It says nothing about whether the config is parseable or the
// environment exists; that is the validator's job.
func IsInitialized(projectDir string) bool {
	info, err := os.Stat(ConfigPath(projectDir))
	return err == nil && !info.IsDir()
}
