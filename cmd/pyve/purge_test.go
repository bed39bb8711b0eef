package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmatic/pyve/internal/pyve"
)

func TestRemoveGeneratedEnvrc(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".envrc")
	require.NoError(t, os.WriteFile(path, []byte("# Generated by pyve\nexport VIRTUAL_ENV=.venv\n"), 0600))

	require.NoError(t, removeGeneratedEnvrc(dir))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveEnvrcKeepsUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".envrc")
	require.NoError(t, os.WriteFile(path, []byte("use flake\n"), 0600))

	require.NoError(t, removeGeneratedEnvrc(dir))
	_, err := os.Stat(path)
	assert.NoError(t, err, "hand-written .envrc must survive purge")
}

func TestRemoveEnvrcMissingIsNoop(t *testing.T) {
	require.NoError(t, removeGeneratedEnvrc(t.TempDir()))
}

func TestRemovePyveStatePreservesTestenv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(pyve.TestenvDir(dir), 0750))
	marker := filepath.Join(pyve.TestenvDir(dir), "keep")
	require.NoError(t, os.WriteFile(marker, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(pyve.ConfigPath(dir), []byte("backend: venv\n"), 0600))
	require.NoError(t, os.MkdirAll(pyve.BinDir(dir), 0750))

	require.NoError(t, removePyveState(dir))

	_, err := os.Stat(marker)
	assert.NoError(t, err, "testenv contents must survive")
	_, err = os.Stat(pyve.ConfigPath(dir))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(pyve.BinDir(dir))
	assert.True(t, os.IsNotExist(err))
}

func TestRemovePyveStateMissingDirIsNoop(t *testing.T) {
	require.NoError(t, removePyveState(t.TempDir()))
}
