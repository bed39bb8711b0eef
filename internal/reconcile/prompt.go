package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pointmatic/pyve/internal/configfile"
)

// StdinPrompter reads menu and confirmation answers line by line.
// Plain stdin reads, no terminal UI: automation drives pyve by piping
// literal bytes ("1\n", "y\n") into it.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (p *StdinPrompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReinitChoice prints the three-way reinit menu and parses the answer.
func (p *StdinPrompter) ReinitChoice(existing *configfile.ProjectConfig, currentVersion string) (Choice, error) {
	fmt.Fprintf(p.Out, "Pyve is already initialized in this project (backend: %s).\n", existing.Backend)
	if existing.IsLegacy() {
		fmt.Fprintf(p.Out, "Configured version: not recorded (legacy), current version: %s\n", currentVersion)
	} else {
		fmt.Fprintf(p.Out, "Configured version: %s, current version: %s\n", existing.PyveVersion, currentVersion)
	}
	fmt.Fprintln(p.Out, "What would you like to do?")
	fmt.Fprintln(p.Out, "  1) Update configuration in place (environment untouched)")
	fmt.Fprintln(p.Out, "  2) Purge and re-initialize (environment deleted)")
	fmt.Fprintln(p.Out, "  3) Cancel")
	fmt.Fprint(p.Out, "Choice [1-3]: ")

	answer, err := p.readLine()
	if err != nil {
		return ChoiceInvalid, err
	}

	switch answer {
	case "1":
		return ChoiceUpdate, nil
	case "2":
		return ChoicePurge, nil
	case "3":
		return ChoiceCancel, nil
	default:
		return ChoiceInvalid, nil
	}
}

// Confirm asks a y/n question; only "y"/"yes" count as confirmation.
func (p *StdinPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.Out, prompt)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
