package backend

import (
	"path/filepath"

	"github.com/pointmatic/pyve/internal/configfile"
)

// Detection sources, in the order they are consulted.
var (
	condaFiles = []string{ManifestFileName, "conda-lock.yml"}
	venvFiles  = []string{"requirements.txt", "pyproject.toml"}
)

// Detect picks a backend from the project's dependency files.
//
// environment.yml or conda-lock.yml alone selects micromamba;
// requirements.txt or pyproject.toml selects venv. When both kinds are
// present (or neither), venv wins: it needs no extra tooling, and a
// wrong guess is cheap to force-reinit.
func Detect(projectDir string) string {
	conda := anyExists(projectDir, condaFiles)
	venv := anyExists(projectDir, venvFiles)

	if conda && !venv {
		return configfile.BackendMicromamba
	}
	return configfile.BackendVenv
}

func anyExists(projectDir string, names []string) bool {
	for _, name := range names {
		if fileExists(filepath.Join(projectDir, name)) {
			return true
		}
	}
	return false
}
