package backend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the subset of environment.yml pyve cares about.
// Dependencies entries may be strings or nested maps (pip: sections),
// so they stay untyped.
type Manifest struct {
	Name         string   `yaml:"name"`
	Channels     []string `yaml:"channels"`
	Dependencies []any    `yaml:"dependencies"`
}

// ReadManifest parses environment.yml from the project directory.
func ReadManifest(projectDir string) (*Manifest, error) {
	path := (&Micromamba{}).ManifestPath(projectDir)
	data, err := os.ReadFile(path) // #nosec G304 - path derived from project dir
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFileName, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFileName, err)
	}

	return &m, nil
}
