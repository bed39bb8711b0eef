// Package config resolves ambient settings (environment variables and
// the optional user config file) into an explicit Settings value.
//
// Commands never read the environment directly; they receive Settings
// so the reconciler stays a pure, testable function.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Env vars honored by pyve.
const (
	// EnvForceYes answers "y" to every confirmation prompt. Used by
	// the test suite and CI automation.
	EnvForceYes = "PYVE_FORCE_YES"

	// EnvCI is the conventional CI marker. When set, interactive
	// prompting is suppressed.
	EnvCI = "CI"
)

// Settings are the behavior switches that would otherwise be read
// ambiently from the environment.
type Settings struct {
	// AutoYes makes every y/n confirmation succeed without prompting.
	AutoYes bool

	// CI indicates a CI environment; the interactive reinit menu is
	// skipped and treated as "update".
	CI bool

	// Interactive is true unless CI is set. Prompts read stdin even
	// when it is piped, so automation can drive the menu with literal
	// "1"/"2"/"3" bytes.
	Interactive bool

	// NoDirenv disables .envrc generation by default (user config).
	NoDirenv bool
}

// Resolve builds Settings from the process environment and the user
// config file (~/.config/pyve/config.yaml, optional). Flag overrides
// are applied by the caller on top of the result.
func Resolve() Settings {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pyve"))
	}
	v.SetEnvPrefix("PYVE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Missing user config is the normal case.
	_ = v.ReadInConfig()

	s := Settings{
		AutoYes:  isTruthy(os.Getenv(EnvForceYes)) || v.GetBool("force-yes"),
		CI:       isTruthy(os.Getenv(EnvCI)),
		NoDirenv: v.GetBool("no-direnv"),
	}
	s.Interactive = !s.CI

	return s
}

// isTruthy matches the original tool's env var handling: any non-empty
// value other than "0", "false", or "no" counts as set.
func isTruthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}
