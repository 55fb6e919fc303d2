// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package gitadapt wraps go-git (the repository library, chosen over
// libgit2/CGo bindings per the domain-stack decision in SPEC_FULL.md §2)
// behind the narrow Status/Diff/Blame/Log/Tags/Fetch/Push surface the rest
// of the module needs. Each read-only function is a pure function of the
// repository at a moment in time; Fetch/CheckoutBranch/DiscardChanges
// mutate it and bump its attached Generation (Push does not bump it). Grounded on
// original_source/asyncgit/src/sync/{status,blame,tags,revwalk,remotes}.rs
// and on Sumatoshi-tech/codefang's use of go-git for commit/tree walking.
package gitadapt

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
)

// Repository is a thin handle around an open go-git repository, opened
// once and reused across adapter calls (unlike the Rust original, which
// reopens gix/git2 handles per call — grounded instead on the teacher's
// long-lived *git2.Repository handles in pkg/repository before deletion).
type Repository struct {
	repo       *git.Repository
	path       string
	generation *asyncjob.Generation
}

// Open opens the repository rooted at path (a working directory or a bare
// repository), discovering the .git directory the way `git` itself does.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gitadapt: open %q: %w", path, err)
	}
	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path Repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Raw exposes the underlying go-git handle for packages (internal/commitpipe)
// that need plumbing operations this package deliberately doesn't wrap.
func (r *Repository) Raw() *git.Repository {
	return r.repo
}

// GitDir returns the repository's .git directory path, assuming the
// standard non-bare layout under Path().
func (r *Repository) GitDir() string {
	return filepath.Join(r.path, ".git")
}

// ConfigString reads a single-valued config key (e.g. "core.hooksPath",
// "gpg.format", "user.signingKey"), satisfying hooks.ConfigReader and
// commitpipe's own config needs.
func (r *Repository) ConfigString(key string) (string, bool) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", false
	}
	section, subKey, ok := splitConfigKey(key)
	if !ok {
		return "", false
	}
	raw := cfg.Raw.Section(section)
	if raw == nil || !raw.HasOption(subKey) {
		return "", false
	}
	return raw.Option(subKey), true
}

func splitConfigKey(key string) (section, option string, ok bool) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}
