package direnv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmatic/pyve/internal/configfile"
)

func TestWriteVenvEnvrc(t *testing.T) {
	dir := t.TempDir()
	cfg := &configfile.ProjectConfig{Backend: configfile.BackendVenv}

	require.NoError(t, Write(dir, cfg))

	data, err := os.ReadFile(filepath.Join(dir, EnvrcName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "VIRTUAL_ENV")
	assert.Contains(t, string(data), ".venv")
}

func TestWriteMicromambaEnvrc(t *testing.T) {
	dir := t.TempDir()
	cfg := &configfile.ProjectConfig{
		Backend:     configfile.BackendMicromamba,
		Environment: configfile.EnvironmentConfig{Name: "test-env"},
	}

	require.NoError(t, Write(dir, cfg))

	data, err := os.ReadFile(filepath.Join(dir, EnvrcName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "micromamba activate test-env")
}

func TestWritePreservesExisting(t *testing.T) {
	dir := t.TempDir()
	custom := "# my custom envrc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvrcName), []byte(custom), 0600))

	cfg := &configfile.ProjectConfig{Backend: configfile.BackendVenv}
	require.NoError(t, Write(dir, cfg))

	data, err := os.ReadFile(filepath.Join(dir, EnvrcName))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}
