// Package direnv writes the project .envrc and registers it with
// direnv when the tool is available.
package direnv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pointmatic/pyve/internal/configfile"
)

// EnvrcName is the direnv entry point file.
const EnvrcName = ".envrc"

// Write generates .envrc for the project's backend. An existing
// .envrc is left alone: users customize these.
func Write(projectDir string, cfg *configfile.ProjectConfig) error {
	path := filepath.Join(projectDir, EnvrcName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	var content string
	switch cfg.Backend {
	case configfile.BackendMicromamba:
		content = fmt.Sprintf("# Generated by pyve\nmicromamba activate %s\n", cfg.EnvironmentName(projectDir))
	default:
		content = fmt.Sprintf("# Generated by pyve\nexport VIRTUAL_ENV=%q\nPATH_add %q\n",
			cfg.VenvDirectory(), filepath.Join(cfg.VenvDirectory(), "bin"))
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", EnvrcName, err)
	}

	return nil
}

// Allow runs `direnv allow` for the project. Best effort: a missing
// direnv binary is not an error, the .envrc still works once the user
// installs and allows it.
func Allow(projectDir string) {
	bin, err := exec.LookPath("direnv")
	if err != nil {
		return
	}

	cmd := exec.Command(bin, "allow", projectDir) // #nosec G204 - binary from LookPath
	cmd.Dir = projectDir
	_ = cmd.Run()
}
