package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmatic/pyve/internal/configfile"
	"github.com/pointmatic/pyve/internal/pyve"
)

const currentVersion = "0.8.9"

func seedVenvProject(t *testing.T, cfg *configfile.ProjectConfig) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, cfg.Save(dir))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, cfg.VenvDirectory(), "bin"), 0750))
	return dir
}

func reportText(r *Report) string {
	var b strings.Builder
	for _, c := range r.Checks {
		b.WriteString(c.Name)
		b.WriteString(" ")
		b.WriteString(c.Message)
		b.WriteString(" ")
		b.WriteString(c.Detail)
		b.WriteString("\n")
	}
	return b.String()
}

func TestNotConfigured(t *testing.T) {
	report := Run(t.TempDir(), currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	require.Len(t, report.Checks, 1, "short-circuit: no further checks without config")
	assert.Equal(t, StatusFail, report.Checks[0].Status)
	assert.Contains(t, report.Checks[0].Message, "not configured")
	assert.Contains(t, report.Checks[0].Message, ".pyve")
}

func TestCorruptConfigReportedAsNotConfigured(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(pyve.Dir(dir), 0750))
	require.NoError(t, os.WriteFile(pyve.ConfigPath(dir), []byte("invalid: yaml: content:"), 0600))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	require.Len(t, report.Checks, 1)
	assert.Contains(t, report.Checks[0].Message, "not configured")
}

func TestEmptyConfigFailsOnBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(pyve.Dir(dir), 0750))
	require.NoError(t, os.WriteFile(pyve.ConfigPath(dir), []byte(""), 0600))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	assert.Contains(t, strings.ToLower(reportText(report)), "backend")
}

func TestUnrecognizedBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := &configfile.ProjectConfig{PyveVersion: currentVersion, Backend: "conda"}
	require.NoError(t, cfg.Save(dir))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	assert.Contains(t, reportText(report), "conda")
}

func TestHealthyVenvProject(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: currentVersion,
		Backend:     configfile.BackendVenv,
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitOK, report.ExitCode())
	_, warn, fail := report.Counts()
	assert.Zero(t, warn)
	assert.Zero(t, fail)
	assert.Contains(t, reportText(report), "venv")
}

func TestMissingVenvEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfg := &configfile.ProjectConfig{PyveVersion: currentVersion, Backend: configfile.BackendVenv}
	require.NoError(t, cfg.Save(dir))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	assert.Contains(t, strings.ToLower(reportText(report)), "missing")
}

func TestCustomVenvDirectoryHonored(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: currentVersion,
		Backend:     configfile.BackendVenv,
		Venv:        configfile.VenvConfig{Directory: "custom_venv"},
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitOK, report.ExitCode())
	assert.Contains(t, reportText(report), "custom_venv")
}

func TestMicromambaMissingManifest(t *testing.T) {
	dir := t.TempDir()
	cfg := &configfile.ProjectConfig{PyveVersion: currentVersion, Backend: configfile.BackendMicromamba}
	require.NoError(t, cfg.Save(dir))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitFailures, report.ExitCode())
	assert.Contains(t, reportText(report), "environment.yml")
}

func TestVersionMismatchOlderWarns(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: "0.6.6",
		Backend:     configfile.BackendVenv,
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitWarnings, report.ExitCode())
	text := reportText(report)
	assert.Contains(t, text, "0.6.6")
	assert.Contains(t, text, "0.8.9")
}

func TestVersionMismatchNewerWarns(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: "99.0.0",
		Backend:     configfile.BackendVenv,
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitWarnings, report.ExitCode())
	assert.Contains(t, reportText(report), "99.0.0")
}

func TestMalformedVersionWarns(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: "banana",
		Backend:     configfile.BackendVenv,
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitWarnings, report.ExitCode())
	assert.Contains(t, reportText(report), "banana")
}

func TestLegacyProjectWarnsOnce(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{Backend: configfile.BackendVenv})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitWarnings, report.ExitCode())
	_, warn, _ := report.Counts()
	assert.Equal(t, 1, warn, "exactly one legacy warning")
	assert.Contains(t, strings.ToLower(reportText(report)), "not recorded")
}

func TestMatchingVersionNoWarnings(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: currentVersion,
		Backend:     configfile.BackendVenv,
		Python:      configfile.PythonConfig{Version: "3.11"},
	})

	report := Run(dir, currentVersion)

	_, warn, fail := report.Counts()
	assert.Zero(t, warn)
	assert.Zero(t, fail)
	assert.Contains(t, reportText(report), "3.11")
}

func TestDirenvEnabledButMissingWarns(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: currentVersion,
		Backend:     configfile.BackendVenv,
		Direnv:      configfile.DirenvConfig{Enabled: true},
	})

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitWarnings, report.ExitCode())
	assert.Contains(t, reportText(report), ".envrc")
}

func TestDirenvPresentPasses(t *testing.T) {
	dir := seedVenvProject(t, &configfile.ProjectConfig{
		PyveVersion: currentVersion,
		Backend:     configfile.BackendVenv,
		Direnv:      configfile.DirenvConfig{Enabled: true},
	})
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".envrc"), []byte("export VIRTUAL_ENV=.venv\n"), 0600))

	report := Run(dir, currentVersion)

	assert.Equal(t, ExitOK, report.ExitCode())
	assert.Contains(t, reportText(report), ".envrc")
}

func TestExitCodePrecedence(t *testing.T) {
	r := &Report{}
	assert.Equal(t, ExitOK, r.ExitCode())

	r.add(Check{Status: StatusPass})
	assert.Equal(t, ExitOK, r.ExitCode())

	r.add(Check{Status: StatusWarn})
	assert.Equal(t, ExitWarnings, r.ExitCode())

	r.add(Check{Status: StatusFail})
	assert.Equal(t, ExitFailures, r.ExitCode())
}
