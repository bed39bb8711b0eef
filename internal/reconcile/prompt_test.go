package reconcile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointmatic/pyve/internal/configfile"
)

func menuChoice(t *testing.T, input string) Choice {
	t.Helper()
	var out bytes.Buffer
	p := &StdinPrompter{In: strings.NewReader(input), Out: &out}
	choice, err := p.ReinitChoice(existingVenv(), "0.8.9")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "What would you like to do?")
	return choice
}

func TestReinitChoiceParsing(t *testing.T) {
	assert.Equal(t, ChoiceUpdate, menuChoice(t, "1\n"))
	assert.Equal(t, ChoicePurge, menuChoice(t, "2\n"))
	assert.Equal(t, ChoiceCancel, menuChoice(t, "3\n"))
	assert.Equal(t, ChoiceInvalid, menuChoice(t, "5\n"))
	assert.Equal(t, ChoiceInvalid, menuChoice(t, "yes\n"))
}

func TestReinitChoiceShowsVersions(t *testing.T) {
	var out bytes.Buffer
	p := &StdinPrompter{In: strings.NewReader("3\n"), Out: &out}
	_, err := p.ReinitChoice(&configfile.ProjectConfig{PyveVersion: "0.8.7", Backend: "venv"}, "0.8.9")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "0.8.7")
	assert.Contains(t, out.String(), "0.8.9")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := &StdinPrompter{In: strings.NewReader(tt.input), Out: &out}
		got, err := p.Confirm("Continue? (y/n): ")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Continue?")
	}
}
