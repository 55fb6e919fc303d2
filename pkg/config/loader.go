// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gizzahub/asyncgit/pkg/commithelper"
)

// loadOrDefault reads path as YAML into a T, returning defaultValue if the
// file is absent. A malformed file is renamed aside with a ".old" suffix
// and defaultValue is returned in its place (spec §6: "Malformed files are
// renamed .old and replaced with defaults").
func loadOrDefault[T any](path string, defaultValue T) (T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultValue, nil
	}
	if err != nil {
		return defaultValue, fmt.Errorf("config: read %s: %w", path, err)
	}

	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		if renameErr := os.Rename(path, path+".old"); renameErr != nil {
			return defaultValue, fmt.Errorf("config: %s is malformed and could not be renamed aside: %w", path, renameErr)
		}
		return defaultValue, nil
	}
	return v, nil
}

// LoadKeyConfig loads key_config.yaml, or DefaultKeyConfig() if absent or
// malformed.
func LoadKeyConfig(path string) (KeyConfig, error) {
	cfg, err := loadOrDefault(path, DefaultKeyConfig())
	if err != nil {
		return KeyConfig{}, err
	}
	if cfg.Bindings == nil {
		cfg = DefaultKeyConfig()
	}
	return cfg, nil
}

// LoadTheme loads theme.yaml, or DefaultTheme() if absent or malformed.
func LoadTheme(path string) (Theme, error) {
	theme, err := loadOrDefault(path, DefaultTheme())
	if err != nil {
		return Theme{}, err
	}
	if theme.Colors == nil {
		theme = DefaultTheme()
	}
	return theme, nil
}

// LoadCommitHelpers loads commit_helpers.yaml, or an empty set if absent or
// malformed.
func LoadCommitHelpers(path string) (CommitHelpersFile, error) {
	return loadOrDefault(path, DefaultCommitHelpers())
}

// ToHelpers converts the parsed entries into pkg/commithelper.Helper
// values, taking the first rune of a non-empty Hotkey string.
func (f CommitHelpersFile) ToHelpers() []commithelper.Helper {
	helpers := make([]commithelper.Helper, 0, len(f.Helpers))
	for _, e := range f.Helpers {
		var hotkey rune
		for _, r := range e.Hotkey {
			hotkey = r
			break
		}
		helpers = append(helpers, commithelper.Helper{
			Name:         e.Name,
			ShellCommand: e.Command,
			Description:  e.Description,
			Hotkey:       hotkey,
			TimeoutSecs:  e.TimeoutSecs,
		})
	}
	return helpers
}
