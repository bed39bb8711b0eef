package pyve

import (
	"fmt"
	"strings"
)

// Version is the current pyve version (overridden by ldflags at build time).
var Version = "0.8.9"

// Build can be set via ldflags at compile time.
var Build = "dev"

// CompareVersions compares two dotted version strings numerically.
// Returns -1 if v1 < v2, 0 if equal, 1 if v1 > v2. Missing parts
// compare as 0, so "0.8" == "0.8.0".
func CompareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	maxLen := len(parts1)
	if len(parts2) > maxLen {
		maxLen = len(parts2)
	}

	for i := 0; i < maxLen; i++ {
		var p1, p2 int
		if i < len(parts1) {
			_, _ = fmt.Sscanf(parts1[i], "%d", &p1)
		}
		if i < len(parts2) {
			_, _ = fmt.Sscanf(parts2[i], "%d", &p2)
		}
		if p1 < p2 {
			return -1
		}
		if p1 > p2 {
			return 1
		}
	}

	return 0
}

// IsValidVersion checks that a version string looks like dotted
// numerics (X.Y.Z). Used to reject garbage from hand-edited configs.
func IsValidVersion(version string) bool {
	if version == "" {
		return false
	}
	for _, part := range strings.Split(version, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
