// Package gitignore maintains the project .gitignore entries pyve
// needs, without clobbering user content.
package gitignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileName = ".gitignore"

// marker heads the section pyve appends, so repeated inits stay tidy.
const marker = "# pyve"

// Ensure appends any of the wanted entries that are not already
// present. Existing lines are matched exactly after trimming.
func Ensure(projectDir string, entries []string) error {
	path := filepath.Join(projectDir, fileName)

	existing := make(map[string]bool)
	if file, err := os.Open(path); err == nil { // #nosec G304 - path derived from project dir
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			existing[strings.TrimSpace(scanner.Text())] = true
		}
		_ = file.Close()
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading %s: %w", fileName, err)
		}
	}

	var missing []string
	for _, entry := range entries {
		if !existing[entry] {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304 - path derived from project dir
	if err != nil {
		return fmt.Errorf("opening %s: %w", fileName, err)
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	if len(existing) > 0 && !existing[marker] {
		b.WriteString("\n")
	}
	if !existing[marker] {
		b.WriteString(marker + "\n")
	}
	for _, entry := range missing {
		b.WriteString(entry + "\n")
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", fileName, err)
	}

	return nil
}

// Entries returns the standard ignore list for a backend setup.
func Entries(venvDir string, direnvEnabled bool) []string {
	entries := []string{venvDir + "/", ".pyve/"}
	if direnvEnabled {
		entries = append(entries, ".envrc")
	}
	return entries
}
