// Package settings reads and writes the user-level configuration file.
//
// Settings never change how a project builds; they hold preferences for
// the peripheral commands, such as color output and defaults for
// kiln new. Project semantics live in the Kilnfile alone.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the user's preferences.
type Settings struct {
	// Color controls styled terminal output: auto, always or never.
	Color string `toml:"color"`
	// New pre-fills the scaffolding flags and wizard prompts.
	New NewDefaults `toml:"new"`
}

// NewDefaults are the kiln new defaults.
type NewDefaults struct {
	Type     string `toml:"type,omitempty"`
	Standard string `toml:"standard,omitempty"`
	Version  string `toml:"version,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{Color: "auto"}
}

// Path returns the config file location under the user config directory.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kiln", "config.toml"), nil
}

// Load reads the settings at path. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes the settings to path, creating parent directories as
// needed.
func Save(path string, s Settings) error {
	if err := s.validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Set assigns one field by its config key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "color":
		s.Color = value
	case "new.type":
		s.New.Type = value
	case "new.standard":
		s.New.Standard = value
	case "new.version":
		s.New.Version = value
	default:
		return fmt.Errorf("unknown settings key `%s` (known: color, new.type, new.standard, new.version)", key)
	}
	return nil
}

func (s Settings) validate() error {
	switch s.Color {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("`%s` is not a valid color mode (use auto, always or never)", s.Color)
}
