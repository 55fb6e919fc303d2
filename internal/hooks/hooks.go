// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package hooks implements the Hook Resolver (spec §4.G) and Hook Runner
// (spec §4.H): locating a git lifecycle hook script per git's own rules and
// supervising its execution with a timeout. Grounded on
// original_source/git2-hooks/src/hookspath.rs and lib.rs, adapted from
// git2 bindings to the go-git-backed internal/gitadapt.Repository and from
// Rust's process-group signal handling to internal/procexec.
package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Name identifies one of the git lifecycle hooks this package understands.
type Name string

const (
	PreCommit        Name = "pre-commit"
	CommitMsg        Name = "commit-msg"
	PostCommit       Name = "post-commit"
	PrepareCommitMsg Name = "prepare-commit-msg"
	PrePush          Name = "pre-push"
)

const defaultHooksSubdir = "hooks"

// ConfigReader is the narrow slice of repository config the resolver
// needs. internal/gitadapt.Repository satisfies it.
type ConfigReader interface {
	// ConfigString returns the value of a config key (e.g. "core.hooksPath")
	// and whether it is set.
	ConfigString(key string) (string, bool)
}

// Paths is a resolved hook location, per spec §4.G. Presence is not
// verified until Found is called — core.hooksPath entries are returned
// unconditionally (spec §9 open question: "two-step contract").
type Paths struct {
	GitDir  string
	WorkDir string
	Hook    string
}

// Resolve implements spec §4.G: core.hooksPath (expanded, relative paths
// resolved against the hook's working directory) takes precedence
// unconditionally; otherwise search <git-dir>/hooks/<name> then each
// <git-dir>/<extra>/<name>, falling back to the default path if nothing is
// found.
func Resolve(cfg ConfigReader, gitDir, workDir string, name Name, extraSearchDirs []string) (Paths, error) {
	pwd := workDir
	if pwd == "" {
		pwd = gitDir
	}

	if configured, ok := cfg.ConfigString("core.hooksPath"); ok && configured != "" {
		expanded, err := expandPath(configured, pwd)
		if err != nil {
			return Paths{}, err
		}
		return Paths{GitDir: gitDir, WorkDir: pwd, Hook: filepath.Join(expanded, string(name))}, nil
	}

	candidates := make([]string, 0, 1+len(extraSearchDirs))
	candidates = append(candidates, defaultHooksSubdir)
	for _, extra := range extraSearchDirs {
		candidates = append(candidates, strings.TrimRight(extra, "/"))
	}

	for _, dir := range candidates {
		candidate := filepath.Join(gitDir, dir, string(name))
		if _, err := os.Stat(candidate); err == nil {
			return Paths{GitDir: gitDir, WorkDir: pwd, Hook: candidate}, nil
		}
	}

	return Paths{GitDir: gitDir, WorkDir: pwd, Hook: filepath.Join(gitDir, defaultHooksSubdir, string(name))}, nil
}

// expandPath expands a leading "~" against the user's home directory, then
// resolves the result against pwd if it is still relative (man git-config:
// relative core.hooksPath entries are relative to the hook's working
// directory, i.e. the worktree root for non-bare repos).
func expandPath(path, pwd string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(pwd, path), nil
}

// Found reports whether the resolved hook exists and (on Unix) is
// executable by someone. Windows treats every file as executable (spec §4.G).
func (p Paths) Found() bool {
	info, err := os.Stat(p.Hook)
	if err != nil || info.IsDir() {
		return false
	}
	return isExecutable(info)
}

// Result is the tagged outcome of running a hook (spec §3 HookResult).
type Result struct {
	Kind     ResultKind
	ExitCode int
	Stdout   string
	Stderr   string
	HookPath string
}

type ResultKind int

const (
	NoHook ResultKind = iota
	Ran
	TimedOut
)

// Success reports whether this is the one success outcome: Ran with
// exit code 0 (spec invariant 7).
func (r Result) Success() bool {
	return r.Kind == Ran && r.ExitCode == 0
}

// Run resolves and, if found, runs the named hook with the given argv and
// optional stdin, honoring an optional timeout (spec §4.H). Returns
// NoHook (not an error, spec §7) if the hook does not exist.
func Run(ctx context.Context, cfg ConfigReader, gitDir, workDir string, name Name, args []string, stdin []byte, timeout time.Duration, extraSearchDirs []string) (Result, error) {
	paths, err := Resolve(cfg, gitDir, workDir, name, extraSearchDirs)
	if err != nil {
		return Result{}, err
	}
	if !paths.Found() {
		return Result{Kind: NoHook, HookPath: paths.Hook}, nil
	}
	return RunAt(ctx, paths, args, stdin, timeout)
}
