package reconcile

import (
	"fmt"
	"io"

	"github.com/pointmatic/pyve/internal/backend"
	"github.com/pointmatic/pyve/internal/configfile"
)

// Prompter supplies the two interactions the reconciler can need. The
// CLI wires a stdin implementation; tests inject canned answers.
type Prompter interface {
	// ReinitChoice shows the three-way menu and returns the parsed
	// choice. Input outside {1,2,3} returns ChoiceInvalid, not an error.
	ReinitChoice(existing *configfile.ProjectConfig, currentVersion string) (Choice, error)

	// Confirm asks a y/n question; only an explicit "y"/"yes" is true.
	Confirm(prompt string) (bool, error)
}

// Reconciler executes the selected outcome's side effects.
type Reconciler struct {
	// Version is the current tool version written into the config.
	Version string

	// Prompt handles interactive input.
	Prompt Prompter

	// Out receives progress output (stdout in the CLI).
	Out io.Writer

	// Scaffold runs after a fresh environment is created and before
	// the config is written: gitignore entries, .envrc, python
	// version recording. May be nil.
	Scaffold func(projectDir string, cfg *configfile.ProjectConfig, req Request) error
}

// Run loads on-disk state, decides, and executes. The returned outcome
// is what actually happened (a declined force confirmation comes back
// as OutcomeCancel). The returned error is terminal (exit 1 at the CLI
// layer); a nil return is exit 0, including cancellations.
func (r *Reconciler) Run(projectDir string, req Request) (Outcome, error) {
	existing, err := configfile.Load(projectDir)
	if err != nil {
		// Corrupt config: mutating on top of unparseable state could
		// destroy a healthy environment, so refuse.
		return OutcomeCancel, err
	}

	choice := ChoiceNone
	if existing != nil && req.Mode == ModeNone {
		if !req.Interactive || req.AutoYes {
			// Non-interactive reinit defaults to the safe path.
			req.Mode = ModeUpdate
		} else {
			choice, err = r.Prompt.ReinitChoice(existing, r.Version)
			if err != nil {
				return OutcomeCancel, err
			}
		}
	}

	outcome, err := Decide(existing, req, choice)
	if err != nil {
		return outcome, err
	}

	switch outcome {
	case OutcomeFresh:
		return OutcomeFresh, r.freshInit(projectDir, req, existing)
	case OutcomeUpdate:
		return OutcomeUpdate, r.update(projectDir, req, existing)
	case OutcomeForce:
		return r.force(projectDir, req, existing)
	case OutcomeCancel:
		fmt.Fprintln(r.Out, "Initialization cancelled.")
		return OutcomeCancel, nil
	}

	return outcome, nil
}

// freshInit creates the backend environment, runs scaffolding, and
// only then writes the config. A failed create leaves no config
// claiming success.
func (r *Reconciler) freshInit(projectDir string, req Request, previous *configfile.ProjectConfig) error {
	name := req.Backend
	if name == "" || name == "auto" {
		if previous != nil && previous.BackendRecognized() {
			name = previous.Backend
		} else {
			name = backend.Detect(projectDir)
		}
	}

	b, err := backend.For(name)
	if err != nil {
		return err
	}

	cfg := &configfile.ProjectConfig{
		PyveVersion: r.Version,
		Backend:     name,
	}
	if req.VenvDir != "" {
		cfg.Venv.Directory = req.VenvDir
	} else if previous != nil && previous.Venv.Directory != "" {
		cfg.Venv.Directory = previous.Venv.Directory
	}
	if name == configfile.BackendMicromamba {
		if m, err := backend.ReadManifest(projectDir); err == nil && m.Name != "" {
			cfg.Environment.Name = m.Name
		}
	}
	cfg.Direnv.Enabled = !req.NoDirenv

	fmt.Fprintf(r.Out, "Initializing %s environment...\n", name)
	if err := b.Create(projectDir, cfg); err != nil {
		return err
	}

	if r.Scaffold != nil {
		if err := r.Scaffold(projectDir, cfg, req); err != nil {
			return err
		}
	}

	if err := cfg.Save(projectDir); err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "Project initialized with backend: %s\n", name)
	return nil
}

// update rewrites the recorded version and nothing else.
func (r *Reconciler) update(projectDir string, req Request, existing *configfile.ProjectConfig) error {
	fmt.Fprintln(r.Out, "Updating existing Pyve installation...")

	if existing.IsLegacy() {
		fmt.Fprintf(r.Out, "Legacy project detected (no version recorded); recording version %s\n", r.Version)
	} else {
		fmt.Fprintf(r.Out, "Version: %s -> %s\n", existing.PyveVersion, r.Version)
	}

	existing.PyveVersion = r.Version
	if err := existing.Save(projectDir); err != nil {
		return err
	}

	fmt.Fprintln(r.Out, "Configuration updated.")
	return nil
}

// force purges the existing environment (reserved testenv subpath
// untouched) and reinitializes. Declining the confirmation is a
// cancel, not an error.
func (r *Reconciler) force(projectDir string, req Request, existing *configfile.ProjectConfig) (Outcome, error) {
	fmt.Fprintln(r.Out, "Force re-initialization requested.")

	if !req.AutoYes {
		ok, err := r.Prompt.Confirm("This will delete the existing environment. Continue? (y/n): ")
		if err != nil {
			return OutcomeCancel, err
		}
		if !ok {
			fmt.Fprintln(r.Out, "Initialization cancelled.")
			return OutcomeCancel, nil
		}
	}

	if existing != nil && existing.BackendRecognized() {
		b, err := backend.For(existing.Backend)
		if err != nil {
			return OutcomeForce, err
		}
		fmt.Fprintf(r.Out, "Purging existing %s environment...\n", existing.Backend)
		if err := b.Purge(projectDir, existing); err != nil {
			return OutcomeForce, err
		}
	}

	return OutcomeForce, r.freshInit(projectDir, req, existing)
}
