// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
)

// DirName is the app's subdirectory under the config/cache roots.
const DirName = "asyncgit"

const (
	// KeyConfigFileName is the key-binding file (spec §6 "key_config.ron",
	// reworked to YAML here — see doc.go).
	KeyConfigFileName = "key_config.yaml"

	// ThemeFileName is the theme file (spec §6 "theme.ron").
	ThemeFileName = "theme.yaml"

	// CommitHelpersFileName defines named shell commands (spec §6
	// "commit_helpers.ron").
	CommitHelpersFileName = "commit_helpers.yaml"

	// LogFileName is the default trace log (spec §6 "-l/--logging").
	LogFileName = "asyncgit.log"
)

// Paths resolves the config and cache directories per spec §6: "First of
// $XDG_CONFIG_HOME, $HOME/.config, OS config dir. Within it: gitui/" (here:
// DirName), and analogously for the cache dir.
type Paths struct {
	ConfigDir string
	CacheDir  string
}

// Resolve computes Paths using the environment, preferring XDG variables
// over the OS-specific defaults os.UserConfigDir/os.UserCacheDir already
// apply (spec §6's precedence is XDG_CONFIG_HOME, then $HOME/.config, then
// the OS config dir — the middle step matters on Linux where
// os.UserConfigDir honors XDG_CONFIG_HOME itself but not a bare $HOME
// fallback distinct from the platform default).
func Resolve() (Paths, error) {
	configRoot, err := configRoot()
	if err != nil {
		return Paths{}, err
	}
	cacheRoot, err := cacheRoot()
	if err != nil {
		return Paths{}, err
	}
	return Paths{
		ConfigDir: filepath.Join(configRoot, DirName),
		CacheDir:  filepath.Join(cacheRoot, DirName),
	}, nil
}

func configRoot() (string, error) {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config"), nil
	}
	return os.UserConfigDir()
}

func cacheRoot() (string, error) {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v, nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".cache"), nil
	}
	return os.UserCacheDir()
}

// EnsureDirectories creates ConfigDir and CacheDir if missing.
func (p Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.ConfigDir, 0o700); err != nil {
		return err
	}
	return os.MkdirAll(p.CacheDir, 0o700)
}

// KeyConfigFile, ThemeFile, CommitHelpersFile, and LogFile return the full
// path to each persisted file.
func (p Paths) KeyConfigFile() string     { return filepath.Join(p.ConfigDir, KeyConfigFileName) }
func (p Paths) ThemeFile() string         { return filepath.Join(p.ConfigDir, ThemeFileName) }
func (p Paths) CommitHelpersFile() string { return filepath.Join(p.ConfigDir, CommitHelpersFileName) }
func (p Paths) LogFile() string           { return filepath.Join(p.CacheDir, LogFileName) }
