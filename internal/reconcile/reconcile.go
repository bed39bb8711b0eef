// Package reconcile decides what --init does when a project may
// already be initialized: fresh init, in-place update, destructive
// re-init, or cancel.
//
// The decision itself is a pure function (Decide); prompting and side
// effects live in the Reconciler so the decision table is testable
// without stdin or a filesystem.
package reconcile

import (
	"errors"

	"github.com/pointmatic/pyve/internal/configfile"
)

// Mode is the reinit mode requested on the command line.
type Mode int

const (
	// ModeNone means neither --update nor --force was given.
	ModeNone Mode = iota
	// ModeUpdate is --update: refresh config, keep the environment.
	ModeUpdate
	// ModeForce is --force: purge and reinitialize.
	ModeForce
)

// Choice is the user's answer to the interactive reinit menu.
type Choice int

const (
	// ChoiceNone means no menu was shown.
	ChoiceNone Choice = iota
	// ChoiceUpdate is menu option 1: update in place.
	ChoiceUpdate
	// ChoicePurge is menu option 2: purge and reinitialize.
	ChoicePurge
	// ChoiceCancel is menu option 3: do nothing.
	ChoiceCancel
	// ChoiceInvalid is any other input. Terminal failure.
	ChoiceInvalid
)

// Outcome is the single selected reconciliation result.
type Outcome int

const (
	// OutcomeFresh initializes a project with no prior state.
	OutcomeFresh Outcome = iota
	// OutcomeUpdate rewrites the recorded version, nothing else.
	OutcomeUpdate
	// OutcomeForce purges the environment and reinitializes.
	OutcomeForce
	// OutcomeCancel exits successfully with no side effects.
	OutcomeCancel
)

// Request is the transient value built from CLI flags.
type Request struct {
	// Backend is the requested backend; empty keeps the existing one
	// (or triggers auto-detection on fresh init).
	Backend string

	// Mode from --update / --force.
	Mode Mode

	// VenvDir overrides the venv directory for fresh init.
	VenvDir string

	// NoDirenv skips .envrc generation.
	NoDirenv bool

	// AutoYes answers confirmations without prompting
	// (--yes or PYVE_FORCE_YES).
	AutoYes bool

	// Interactive permits the three-way menu. False (CI, piped stdin)
	// makes ModeNone behave like ModeUpdate.
	Interactive bool

	// AutoBootstrap downloads micromamba when it is missing.
	AutoBootstrap bool
}

// Terminal reconciliation errors. Neither performs any mutation.
var (
	// ErrBackendConflict: --update with a backend different from the
	// recorded one.
	ErrBackendConflict = errors.New("Cannot update in-place: backend change detected (use --force to switch backends)")

	// ErrInvalidChoice: interactive menu input outside {1,2,3}.
	ErrInvalidChoice = errors.New("Invalid choice")
)

// Decide selects exactly one outcome from existing on-disk state, the
// request, and (when the menu was shown) the user's choice. Pure: no
// I/O, no mutation.
func Decide(existing *configfile.ProjectConfig, req Request, choice Choice) (Outcome, error) {
	if existing == nil {
		return OutcomeFresh, nil
	}

	mode := req.Mode
	if mode == ModeNone {
		switch choice {
		case ChoiceUpdate:
			mode = ModeUpdate
		case ChoicePurge:
			mode = ModeForce
		case ChoiceCancel:
			return OutcomeCancel, nil
		default:
			return OutcomeCancel, ErrInvalidChoice
		}
	}

	switch mode {
	case ModeUpdate:
		if backendConflicts(existing, req) {
			return OutcomeCancel, ErrBackendConflict
		}
		return OutcomeUpdate, nil
	case ModeForce:
		return OutcomeForce, nil
	}

	return OutcomeCancel, ErrInvalidChoice
}

// backendConflicts reports whether the request names a backend other
// than the recorded one. The backend field only changes via force.
func backendConflicts(existing *configfile.ProjectConfig, req Request) bool {
	return req.Backend != "" && existing.Backend != "" && req.Backend != existing.Backend
}
