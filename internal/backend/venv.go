package backend

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pointmatic/pyve/internal/configfile"
)

// Venv manages a standard virtual environment under the project
// directory (default .venv, overridable via venv.directory).
type Venv struct{}

func (v *Venv) Name() string { return configfile.BackendVenv }

// Dir returns the absolute venv directory for a project.
func (v *Venv) Dir(projectDir string, cfg *configfile.ProjectConfig) string {
	return filepath.Join(projectDir, cfg.VenvDirectory())
}

func (v *Venv) Exists(projectDir string, cfg *configfile.ProjectConfig) bool {
	info, err := os.Stat(v.Dir(projectDir, cfg))
	return err == nil && info.IsDir()
}

func (v *Venv) Create(projectDir string, cfg *configfile.ProjectConfig) error {
	python, err := findPython()
	if err != nil {
		return err
	}

	venvDir := v.Dir(projectDir, cfg)
	cmd := exec.Command(python, "-m", "venv", venvDir) // #nosec G204 - python path from LookPath
	cmd.Dir = projectDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("creating venv at %s: %w\n%s", cfg.VenvDirectory(), err, out)
	}

	// Install declared dependencies when a requirements file exists.
	reqs := filepath.Join(projectDir, "requirements.txt")
	if _, err := os.Stat(reqs); err == nil {
		pip := filepath.Join(venvDir, "bin", "pip")
		cmd := exec.Command(pip, "install", "-r", reqs) // #nosec G204 - pip path inside venv we just created
		cmd.Dir = projectDir
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("installing requirements.txt: %w\n%s", err, out)
		}
	}

	return nil
}

func (v *Venv) Purge(projectDir string, cfg *configfile.ProjectConfig) error {
	venvDir := v.Dir(projectDir, cfg)
	if err := os.RemoveAll(venvDir); err != nil {
		return fmt.Errorf("removing %s: %w", cfg.VenvDirectory(), err)
	}
	return nil
}

func (v *Venv) Command(projectDir string, cfg *configfile.ProjectConfig, args []string) ([]string, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no command given")
	}

	venvDir := v.Dir(projectDir, cfg)
	binDir := filepath.Join(venvDir, "bin")

	// Commands resolve against the venv bin first, same as an
	// activated shell.
	env := []string{
		"VIRTUAL_ENV=" + venvDir,
		"PATH=" + binDir + string(os.PathListSeparator) + os.Getenv("PATH"),
	}

	argv := args
	if bin := filepath.Join(binDir, args[0]); fileExists(bin) {
		argv = append([]string{bin}, args[1:]...)
	}

	return argv, env, nil
}

// PythonVersion reports the interpreter version inside the venv,
// empty when it cannot be determined.
func (v *Venv) PythonVersion(projectDir string, cfg *configfile.ProjectConfig) string {
	python := filepath.Join(v.Dir(projectDir, cfg), "bin", "python")
	out, err := exec.Command(python, "--version").CombinedOutput() // #nosec G204 - python path inside venv
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(out)), "Python"))
}

// findPython prefers python3 but accepts python for environments
// (pyenv/asdf shims) that only expose the unversioned name.
func findPython() (string, error) {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no python interpreter found on PATH")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
