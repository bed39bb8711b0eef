// Package validate inspects on-disk project state without mutating it
// and produces a ValidationReport with per-check pass/warn/fail
// results and a worst-severity-wins exit code.
package validate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/configfile"
	"github.com/pointmatic/pyve/internal/pyve"
)

// Severity of a single check.
const (
	StatusPass = "pass"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Exit codes for the validate command.
const (
	ExitOK       = 0
	ExitFailures = 1
	ExitWarnings = 2
)

// Check is one validation result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Report is an ordered sequence of checks.
type Report struct {
	Checks []Check `json:"checks"`
}

func (r *Report) add(c Check) {
	r.Checks = append(r.Checks, c)
}

// Counts returns (pass, warn, fail) totals.
func (r *Report) Counts() (int, int, int) {
	var pass, warn, fail int
	for _, c := range r.Checks {
		switch c.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return pass, warn, fail
}

// ExitCode derives the overall exit code: any fail wins over warns,
// warns win over passes.
func (r *Report) ExitCode() int {
	_, warn, fail := r.Counts()
	if fail > 0 {
		return ExitFailures
	}
	if warn > 0 {
		return ExitWarnings
	}
	return ExitOK
}

// Run executes all checks against a project directory. currentVersion
// is the running tool's version (pyve.Version in the CLI, pinned in
// tests).
func Run(projectDir, currentVersion string) *Report {
	report := &Report{}

	cfg, ok := checkConfigured(projectDir, report)
	if !ok {
		// Whole-report short-circuit: nothing else is meaningful
		// without a readable config.
		return report
	}

	if !checkBackend(cfg, report) {
		return report
	}

	checkEnvironment(projectDir, cfg, report)
	checkManifest(projectDir, cfg, report)
	checkVersion(cfg, currentVersion, report)
	checkPythonVersion(cfg, report)
	checkDirenv(projectDir, cfg, report)

	return report
}

// checkConfigured verifies .pyve/config exists and parses. A corrupt
// config is reported as "not configured" rather than a parse stack:
// either way the project needs pyve --init.
func checkConfigured(projectDir string, report *Report) (*configfile.ProjectConfig, bool) {
	if _, err := os.Stat(pyve.Dir(projectDir)); os.IsNotExist(err) {
		report.add(Check{
			Name:    "Configuration",
			Status:  StatusFail,
			Message: "Missing .pyve directory - project not configured",
			Detail:  "Run 'pyve --init' to initialize",
		})
		return nil, false
	}

	cfg, err := configfile.Load(projectDir)
	if err != nil || cfg == nil {
		report.add(Check{
			Name:    "Configuration",
			Status:  StatusFail,
			Message: "Config file missing or unreadable - project not configured",
			Detail:  "Run 'pyve --init' to re-create .pyve/config",
		})
		return nil, false
	}

	report.add(Check{
		Name:    "Configuration",
		Status:  StatusPass,
		Message: ".pyve/config present",
	})
	return cfg, true
}

func checkBackend(cfg *configfile.ProjectConfig, report *Report) bool {
	if cfg.Backend == "" {
		report.add(Check{
			Name:    "Backend",
			Status:  StatusFail,
			Message: "No backend recorded in config (missing field)",
		})
		return false
	}
	if !cfg.BackendRecognized() {
		report.add(Check{
			Name:    "Backend",
			Status:  StatusFail,
			Message: fmt.Sprintf("Unrecognized backend %q (expected venv or micromamba)", cfg.Backend),
		})
		return false
	}

	report.add(Check{
		Name:    "Backend",
		Status:  StatusPass,
		Message: cfg.Backend,
	})
	return true
}

func checkEnvironment(projectDir string, cfg *configfile.ProjectConfig, report *Report) {
	switch cfg.Backend {
	case configfile.BackendVenv:
		v := &backend.Venv{}
		if !v.Exists(projectDir, cfg) {
			report.add(Check{
				Name:    "Environment",
				Status:  StatusFail,
				Message: fmt.Sprintf("Virtual environment missing (%s not found)", cfg.VenvDirectory()),
				Detail:  "Run 'pyve --init --force' to re-create it",
			})
			return
		}
		report.add(Check{
			Name:    "Environment",
			Status:  StatusPass,
			Message: fmt.Sprintf("Virtual environment at %s", cfg.VenvDirectory()),
		})
	case configfile.BackendMicromamba:
		m := &backend.Micromamba{}
		name := cfg.EnvironmentName(projectDir)
		if !m.Exists(projectDir, cfg) {
			report.add(Check{
				Name:    "Environment",
				Status:  StatusFail,
				Message: fmt.Sprintf("Micromamba environment %q missing", name),
				Detail:  "Run 'pyve --init --force' to re-create it",
			})
			return
		}
		report.add(Check{
			Name:    "Environment",
			Status:  StatusPass,
			Message: fmt.Sprintf("Micromamba environment %q", name),
		})
	}
}

func checkManifest(projectDir string, cfg *configfile.ProjectConfig, report *Report) {
	switch cfg.Backend {
	case configfile.BackendMicromamba:
		path := (&backend.Micromamba{}).ManifestPath(projectDir)
		if _, err := os.Stat(path); err != nil {
			report.add(Check{
				Name:    "Manifest",
				Status:  StatusFail,
				Message: "environment.yml missing (required for micromamba backend)",
			})
			return
		}
		report.add(Check{
			Name:    "Manifest",
			Status:  StatusPass,
			Message: "environment.yml present",
		})
	case configfile.BackendVenv:
		// requirements.txt is optional for venv; report informationally.
		if _, err := os.Stat(filepath.Join(projectDir, "requirements.txt")); err == nil {
			report.add(Check{
				Name:    "Manifest",
				Status:  StatusPass,
				Message: "requirements.txt present",
			})
		}
	}
}

func checkVersion(cfg *configfile.ProjectConfig, currentVersion string, report *Report) {
	if cfg.IsLegacy() {
		report.add(Check{
			Name:    "Pyve Version",
			Status:  StatusWarn,
			Message: "Version not recorded (legacy project)",
			Detail:  "Run 'pyve --init --update' to record the current version",
		})
		return
	}

	if !pyve.IsValidVersion(cfg.PyveVersion) {
		report.add(Check{
			Name:    "Pyve Version",
			Status:  StatusWarn,
			Message: fmt.Sprintf("Recorded version %q is not a valid version string", cfg.PyveVersion),
			Detail:  "Run 'pyve --init --update' to re-record it",
		})
		return
	}

	switch pyve.CompareVersions(cfg.PyveVersion, currentVersion) {
	case 0:
		report.add(Check{
			Name:    "Pyve Version",
			Status:  StatusPass,
			Message: cfg.PyveVersion,
		})
	case -1:
		report.add(Check{
			Name:    "Pyve Version",
			Status:  StatusWarn,
			Message: fmt.Sprintf("Config version %s is older than current %s", cfg.PyveVersion, currentVersion),
			Detail:  "Run 'pyve --init --update' to refresh",
		})
	default:
		report.add(Check{
			Name:    "Pyve Version",
			Status:  StatusWarn,
			Message: fmt.Sprintf("Config version %s is newer than current %s", cfg.PyveVersion, currentVersion),
		})
	}
}

func checkPythonVersion(cfg *configfile.ProjectConfig, report *Report) {
	if cfg.Python.Version == "" {
		return
	}
	report.add(Check{
		Name:    "Python",
		Status:  StatusPass,
		Message: fmt.Sprintf("Python %s recorded", cfg.Python.Version),
	})
}

func checkDirenv(projectDir string, cfg *configfile.ProjectConfig, report *Report) {
	if _, err := os.Stat(filepath.Join(projectDir, ".envrc")); err == nil {
		report.add(Check{
			Name:    "Direnv",
			Status:  StatusPass,
			Message: ".envrc present",
		})
		return
	}
	if cfg.Direnv.Enabled {
		report.add(Check{
			Name:    "Direnv",
			Status:  StatusWarn,
			Message: "direnv enabled in config but .envrc missing",
		})
		return
	}
	report.add(Check{
		Name:    "Direnv",
		Status:  StatusPass,
		Message: "direnv integration not enabled",
	})
}
