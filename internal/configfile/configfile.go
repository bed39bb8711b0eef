// Package configfile reads and writes the project config at .pyve/config.
//
// The file is YAML with a small fixed schema:
//
//	pyve_version: "0.8.9"
//	backend: venv
//	venv:
//	  directory: .venv
//	python:
//	  version: "3.11"
//
// Legacy projects (initialized before version tracking) have no
// pyve_version field; Load preserves that distinction so callers can
// report them separately.
package configfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pointmatic/pyve/internal/pyve"
)

// Backend names recognized in the config file.
const (
	BackendVenv       = "venv"
	BackendMicromamba = "micromamba"
)

// ErrCorrupt is returned by Load when .pyve/config exists but cannot
// be parsed. Validation treats this the same as "not configured";
// mutating commands treat it as a hard error.
var ErrCorrupt = errors.New("config file is not valid YAML")

type VenvConfig struct {
	Directory string `yaml:"directory,omitempty"`
}

type PythonConfig struct {
	Version string `yaml:"version,omitempty"`
}

type EnvironmentConfig struct {
	Name string `yaml:"name,omitempty"`
}

type DirenvConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// ProjectConfig is the persisted record for an initialized project.
type ProjectConfig struct {
	// PyveVersion is the tool version that last wrote this config.
	// Empty means a legacy project from before version tracking.
	PyveVersion string `yaml:"pyve_version,omitempty"`

	// Backend is "venv" or "micromamba". Once set it only changes
	// through the force path.
	Backend string `yaml:"backend,omitempty"`

	Venv        VenvConfig        `yaml:"venv,omitempty"`
	Python      PythonConfig      `yaml:"python,omitempty"`
	Environment EnvironmentConfig `yaml:"environment,omitempty"`
	Direnv      DirenvConfig      `yaml:"direnv,omitempty"`
}

// VenvDirectory returns the configured venv directory, defaulting to .venv.
func (c *ProjectConfig) VenvDirectory() string {
	if c.Venv.Directory != "" {
		return c.Venv.Directory
	}
	return pyve.DefaultVenvDir
}

// EnvironmentName returns the micromamba environment name, falling
// back to the project directory basename when not recorded.
func (c *ProjectConfig) EnvironmentName(projectDir string) string {
	if c.Environment.Name != "" {
		return c.Environment.Name
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return filepath.Base(projectDir)
	}
	return filepath.Base(abs)
}

// IsLegacy reports whether the config predates version tracking.
func (c *ProjectConfig) IsLegacy() bool {
	return c.PyveVersion == ""
}

// BackendRecognized reports whether Backend is a known value.
func (c *ProjectConfig) BackendRecognized() bool {
	return c.Backend == BackendVenv || c.Backend == BackendMicromamba
}

// Load reads the project config. Returns (nil, nil) when the file does
// not exist, and (nil, ErrCorrupt) when it exists but does not parse.
func Load(projectDir string) (*ProjectConfig, error) {
	data, err := os.ReadFile(pyve.ConfigPath(projectDir)) // #nosec G304 - path derived from project dir
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return &cfg, nil
}

// Save writes the whole config file. Always a full rewrite, never an
// in-place patch, so a partially applied operation can't leave a
// half-updated record.
func (c *ProjectConfig) Save(projectDir string) error {
	dir := pyve.Dir(projectDir)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating %s: %w", pyve.DirName, err)
	}

	var node yaml.Node
	if err := node.Encode(c); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	// pyve_version is always written quoted so YAML readers don't
	// reinterpret version strings (on-disk contract).
	quoteMappingValue(&node, "pyve_version")

	data, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(pyve.ConfigPath(projectDir), data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func quoteMappingValue(node *yaml.Node, key string) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			node.Content[i+1].Style = yaml.DoubleQuotedStyle
			return
		}
	}
}
