package backend

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pointmatic/pyve/internal/configfile"
	"github.com/pointmatic/pyve/internal/pyve"
)

// ManifestFileName is the micromamba environment manifest.
const ManifestFileName = "environment.yml"

// Micromamba manages a conda-style environment through the micromamba
// binary. The environment name comes from the config (or the
// environment.yml name field at init time).
type Micromamba struct{}

func (m *Micromamba) Name() string { return configfile.BackendMicromamba }

// Binary resolves the micromamba executable: the project sandbox
// (.pyve/bin/micromamba, from bootstrap) wins over PATH.
func (m *Micromamba) Binary(projectDir string) (string, error) {
	sandboxed := filepath.Join(pyve.BinDir(projectDir), "micromamba")
	if fileExists(sandboxed) {
		return sandboxed, nil
	}
	if path, err := exec.LookPath("micromamba"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("micromamba not found on PATH (try --auto-bootstrap)")
}

// ManifestPath returns the environment.yml location for a project.
func (m *Micromamba) ManifestPath(projectDir string) string {
	return filepath.Join(projectDir, ManifestFileName)
}

func (m *Micromamba) Exists(projectDir string, cfg *configfile.ProjectConfig) bool {
	bin, err := m.Binary(projectDir)
	if err != nil {
		return false
	}

	out, err := exec.Command(bin, "env", "list").Output() // #nosec G204 - binary from Binary()
	if err != nil {
		return false
	}

	name := cfg.EnvironmentName(projectDir)
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == name {
			return true
		}
	}
	return false
}

func (m *Micromamba) Create(projectDir string, cfg *configfile.ProjectConfig) error {
	manifest := m.ManifestPath(projectDir)
	if !fileExists(manifest) {
		return fmt.Errorf("%s not found (required for micromamba backend)", ManifestFileName)
	}

	bin, err := m.Binary(projectDir)
	if err != nil {
		return err
	}

	name := cfg.EnvironmentName(projectDir)
	cmd := exec.Command(bin, "create", "-n", name, "-f", manifest, "-y") // #nosec G204 - binary from Binary()
	cmd.Dir = projectDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("creating micromamba environment %q: %w\n%s", name, err, out)
	}

	return nil
}

func (m *Micromamba) Purge(projectDir string, cfg *configfile.ProjectConfig) error {
	bin, err := m.Binary(projectDir)
	if err != nil {
		return err
	}

	name := cfg.EnvironmentName(projectDir)
	cmd := exec.Command(bin, "env", "remove", "-n", name, "-y") // #nosec G204 - binary from Binary()
	if out, err := cmd.CombinedOutput(); err != nil {
		// A missing environment is fine; purge is about the end state.
		if strings.Contains(string(out), "No environment") {
			return nil
		}
		return fmt.Errorf("removing micromamba environment %q: %w\n%s", name, err, out)
	}

	return nil
}

func (m *Micromamba) Command(projectDir string, cfg *configfile.ProjectConfig, args []string) ([]string, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no command given")
	}

	bin, err := m.Binary(projectDir)
	if err != nil {
		return nil, nil, err
	}

	argv := append([]string{bin, "run", "-n", cfg.EnvironmentName(projectDir)}, args...)
	return argv, nil, nil
}

// Version reports the micromamba binary version, empty when unavailable.
func (m *Micromamba) Version(projectDir string) string {
	bin, err := m.Binary(projectDir)
	if err != nil {
		return ""
	}
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 - binary from Binary()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
