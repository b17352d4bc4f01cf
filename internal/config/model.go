package config

import (
	"fmt"
	"os"
	"slices"
)

// DefaultConfigDir is where radios and their descriptions are looked up
// when neither a flag nor the environment names a directory.
const DefaultConfigDir = "/etc/radioconf"

// EnvConfigDir overrides DefaultConfigDir.
const EnvConfigDir = "RADIOEDIT_CONFIGDIR"

// SettingsFile is the optional settings file inside the config directory.
const SettingsFile = "radioedit.hcl"

var (
	LogLevels   = []string{"debug", "info", "warn", "error"}
	LogFormats  = []string{"text", "json"}
	DumpFormats = []string{"hcl", "yaml"}
)

// Settings are the user preferences read from the settings file. Empty
// strings and nil pointers mean "not set".
type Settings struct {
	LogLevel   string
	LogFormat  string
	DumpFormat string
	Color      *bool
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	color := true
	return Settings{
		LogLevel:   "info",
		LogFormat:  "text",
		DumpFormat: "hcl",
		Color:      &color,
	}
}

// Merge returns s with every unset value taken from fallback.
func (s Settings) Merge(fallback Settings) Settings {
	if s.LogLevel == "" {
		s.LogLevel = fallback.LogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = fallback.LogFormat
	}
	if s.DumpFormat == "" {
		s.DumpFormat = fallback.DumpFormat
	}
	if s.Color == nil {
		s.Color = fallback.Color
	}
	return s
}

// Validate checks every set value against its allowed values.
func (s Settings) Validate() error {
	if err := oneOf("log level", s.LogLevel, LogLevels); err != nil {
		return err
	}
	if err := oneOf("log format", s.LogFormat, LogFormats); err != nil {
		return err
	}
	return oneOf("dump format", s.DumpFormat, DumpFormats)
}

func oneOf(what, v string, allowed []string) error {
	if v == "" || slices.Contains(allowed, v) {
		return nil
	}
	return fmt.Errorf("invalid %s %q, must be one of %v", what, v, allowed)
}

// ResolveConfigDir picks the configuration directory: the flag value, then
// the environment, then the default.
func ResolveConfigDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return env
	}
	return DefaultConfigDir
}
