// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

// KeyConfig is the key-binding file (spec §6 "key_config.ron"). Bindings
// maps an action name to one or more key chord strings (e.g. "ctrl+c",
// "q"); multiple chords may trigger the same action.
type KeyConfig struct {
	Bindings map[string][]string `yaml:"bindings"`
}

// DefaultKeyConfig mirrors the original's built-in bindings for the actions
// this module actually implements.
func DefaultKeyConfig() KeyConfig {
	return KeyConfig{Bindings: map[string][]string{
		"quit":        {"q", "ctrl+c"},
		"exit_popup":  {"esc"},
		"newline":     {"ctrl+e"},
		"commit":      {"ctrl+enter"},
		"close_popup": {"esc"},
	}}
}

// Theme is the theme file (spec §6 "theme.ron"): a flat map from a named
// UI role (matching pkg/tui's lipgloss style names) to an ANSI color
// string, loaded the same way pkg/tui.HeaderStyle etc. are hand-set, just
// externalized for user overrides.
type Theme struct {
	Colors map[string]string `yaml:"colors"`
}

// DefaultTheme mirrors the built-in colors pkg/tui's styles.go hard-codes.
func DefaultTheme() Theme {
	return Theme{Colors: map[string]string{
		"header.fg":    "15",
		"header.bg":    "62",
		"cursor.fg":    "0",
		"cursor.bg":    "6",
		"unhealthy.fg": "9",
		"dirty.fg":     "11",
		"subtle.fg":    "240",
	}}
}

// CommitHelperEntry is one configured commit helper (spec §6
// "commit_helpers.ron defining {name, command, description?, hotkey?,
// timeout_secs?} entries").
type CommitHelperEntry struct {
	Name        string `yaml:"name"`
	Command     string `yaml:"command"`
	Description string `yaml:"description,omitempty"`
	Hotkey      string `yaml:"hotkey,omitempty"`
	TimeoutSecs uint   `yaml:"timeout_secs,omitempty"`
}

// CommitHelpersFile is the parsed commit_helpers.yaml document.
type CommitHelpersFile struct {
	Helpers []CommitHelperEntry `yaml:"helpers"`
}

// DefaultCommitHelpers is empty: the original ships no commit helpers by
// default, leaving the feature opt-in.
func DefaultCommitHelpers() CommitHelpersFile {
	return CommitHelpersFile{}
}
