// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// IsContinuous reports whether a strictly first-parent walk starting at
// commits[0] visits exactly commits, in that order (spec §4.L). Sequences
// of 0 or 1 elements are trivially continuous. A merge commit breaks
// continuity because its second parent is never visited by this linear
// walk, grounded on original_source/asyncgit/src/sync/revwalk.rs's
// single-parent `resolve`.
func (r *Repository) IsContinuous(commits []string) (bool, error) {
	if len(commits) <= 1 {
		return true, nil
	}

	cursor := plumbing.NewHash(commits[0])
	for _, want := range commits {
		if cursor.String() != want {
			return false, nil
		}

		commit, err := r.repo.CommitObject(cursor)
		if err != nil {
			return false, fmt.Errorf("gitadapt: is continuous: commit %s: %w", cursor, err)
		}
		if commit.NumParents() == 0 {
			cursor = plumbing.ZeroHash
			continue
		}
		cursor = commit.ParentHashes[0]
	}
	return true, nil
}

// Walk runs fn over commits reachable from start (inclusive) down to but
// excluding end, in topological order, stopping early if fn returns false
// (spec §4.L, grounded on revwalk.rs's bounded iterator).
func (r *Repository) Walk(start, end string, fn func(CommitInfo) bool) error {
	startHash := plumbing.NewHash(start)
	iter, err := r.repo.Log(&git.LogOptions{From: startHash, Order: git.LogOrderDFS})
	if err != nil {
		return fmt.Errorf("gitadapt: walk: %w", err)
	}
	defer iter.Close()

	var endHash plumbing.Hash
	if end != "" {
		endHash = plumbing.NewHash(end)
	}

	return iter.ForEach(func(c *object.Commit) error {
		if end != "" && c.Hash == endHash {
			return storer.ErrStop
		}
		if !fn(commitInfoOf(c)) {
			return storer.ErrStop
		}
		return nil
	})
}
