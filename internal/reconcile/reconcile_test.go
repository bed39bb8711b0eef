package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmatic/pyve/internal/configfile"
)

func existingVenv() *configfile.ProjectConfig {
	return &configfile.ProjectConfig{PyveVersion: "0.8.7", Backend: configfile.BackendVenv}
}

func TestDecideNoExistingProject(t *testing.T) {
	for _, mode := range []Mode{ModeNone, ModeUpdate, ModeForce} {
		outcome, err := Decide(nil, Request{Mode: mode}, ChoiceNone)
		require.NoError(t, err)
		assert.Equal(t, OutcomeFresh, outcome, "mode %d", mode)
	}
}

func TestDecideExplicitUpdate(t *testing.T) {
	outcome, err := Decide(existingVenv(), Request{Mode: ModeUpdate}, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdate, outcome)
}

func TestDecideUpdateSameBackend(t *testing.T) {
	req := Request{Mode: ModeUpdate, Backend: configfile.BackendVenv}
	outcome, err := Decide(existingVenv(), req, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdate, outcome)
}

func TestDecideUpdateBackendConflict(t *testing.T) {
	req := Request{Mode: ModeUpdate, Backend: configfile.BackendMicromamba}
	_, err := Decide(existingVenv(), req, ChoiceNone)
	assert.ErrorIs(t, err, ErrBackendConflict)
}

func TestDecideForceAllowsBackendChange(t *testing.T) {
	req := Request{Mode: ModeForce, Backend: configfile.BackendMicromamba}
	outcome, err := Decide(existingVenv(), req, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeForce, outcome)
}

func TestDecideMenuChoices(t *testing.T) {
	tests := []struct {
		choice  Choice
		outcome Outcome
		err     error
	}{
		{ChoiceUpdate, OutcomeUpdate, nil},
		{ChoicePurge, OutcomeForce, nil},
		{ChoiceCancel, OutcomeCancel, nil},
		{ChoiceInvalid, OutcomeCancel, ErrInvalidChoice},
		{ChoiceNone, OutcomeCancel, ErrInvalidChoice},
	}

	for _, tt := range tests {
		outcome, err := Decide(existingVenv(), Request{Mode: ModeNone}, tt.choice)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "choice %d", tt.choice)
			continue
		}
		require.NoError(t, err, "choice %d", tt.choice)
		assert.Equal(t, tt.outcome, outcome, "choice %d", tt.choice)
	}
}

func TestDecideMenuChoiceOneWithConflict(t *testing.T) {
	// Choosing "update" interactively while requesting a different
	// backend is still a conflict.
	req := Request{Mode: ModeNone, Backend: configfile.BackendMicromamba}
	_, err := Decide(existingVenv(), req, ChoiceUpdate)
	assert.ErrorIs(t, err, ErrBackendConflict)
}

func TestDecideMenuChoiceWithoutBackendFlag(t *testing.T) {
	outcome, err := Decide(existingVenv(), Request{Mode: ModeNone}, ChoiceUpdate)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdate, outcome)
}

func TestDecideLegacyProjectUpdates(t *testing.T) {
	legacy := &configfile.ProjectConfig{Backend: configfile.BackendVenv}
	outcome, err := Decide(legacy, Request{Mode: ModeUpdate}, ChoiceNone)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdate, outcome)
}
