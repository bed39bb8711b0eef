// Package testenv manages the reserved test-runner environment at
// .pyve/testenv/venv. It is deliberately separate from the project
// environment so force re-init and purge can destroy the latter
// without breaking `pyve test`.
package testenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pointmatic/pyve/internal/pyve"
)

// VenvDir returns the runner venv directory.
func VenvDir(projectDir string) string {
	return filepath.Join(pyve.TestenvDir(projectDir), "venv")
}

// PythonPath returns the runner interpreter path.
func PythonPath(projectDir string) string {
	return filepath.Join(VenvDir(projectDir), "bin", "python")
}

// Exists reports whether the runner environment is usable.
func Exists(projectDir string) bool {
	info, err := os.Stat(PythonPath(projectDir))
	return err == nil && !info.IsDir()
}

// Ensure creates the runner venv and installs pytest on first use.
// Subsequent calls are no-ops.
func Ensure(projectDir string) error {
	if Exists(projectDir) {
		return nil
	}

	python, err := findPython()
	if err != nil {
		return err
	}

	venvDir := VenvDir(projectDir)
	if err := os.MkdirAll(filepath.Dir(venvDir), 0750); err != nil {
		return fmt.Errorf("creating testenv directory: %w", err)
	}

	cmd := exec.Command(python, "-m", "venv", venvDir) // #nosec G204 - python path from LookPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("creating test runner venv: %w\n%s", err, out)
	}

	pip := filepath.Join(venvDir, "bin", "pip")
	cmd = exec.Command(pip, "install", "pytest") // #nosec G204 - pip inside venv we just created
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("installing pytest: %w\n%s", err, out)
	}

	return nil
}

// PytestArgv builds the argv for running pytest from the runner env.
func PytestArgv(projectDir string, args []string) []string {
	return append([]string{PythonPath(projectDir), "-m", "pytest"}, args...)
}

func findPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found on PATH")
}
