// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// FileDiff is one changed path within a commit or pairwise diff.
type FileDiff struct {
	OldPath string
	NewPath string
	Status  ItemType
	Patch   string
}

// renameThreshold is the similarity fraction required before two sides of
// a change are reported as a rename, per spec §4.I ("rename detection uses
// threshold 100% for file-rename queries"). go-git's merkletrie diff
// itself never coalesces an add+delete pair into a rename, so this value
// documents the policy that detectRenames applies on top of it.
const renameThreshold = 1.0

// CommitDiff diffs commit against its first parent, or against the empty
// tree if commit is a root commit (spec §4.I).
func (r *Repository) CommitDiff(commitHash string) ([]FileDiff, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(commitHash))
	if err != nil {
		return nil, fmt.Errorf("gitadapt: commit diff: %w", err)
	}

	to, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: commit diff: tree: %w", err)
	}

	var from *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("gitadapt: commit diff: parent: %w", err)
		}
		from, err = parent.Tree()
		if err != nil {
			return nil, fmt.Errorf("gitadapt: commit diff: parent tree: %w", err)
		}
	}

	diffs, err := treeDiff(from, to)
	if err != nil {
		return nil, err
	}
	return detectRenames(diffs), nil
}

// PairwiseDiff diffs a and b, ordering the pair so the ancestor is "old"
// when one descends from the other; otherwise the input order is
// preserved (spec §4.I).
func (r *Repository) PairwiseDiff(a, b string) ([]FileDiff, error) {
	oldHash, newHash := a, b
	if ancestor, err := r.isAncestor(b, a); err == nil && ancestor {
		oldHash, newHash = b, a
	}

	oldCommit, err := r.repo.CommitObject(plumbing.NewHash(oldHash))
	if err != nil {
		return nil, fmt.Errorf("gitadapt: pairwise diff: %w", err)
	}
	newCommit, err := r.repo.CommitObject(plumbing.NewHash(newHash))
	if err != nil {
		return nil, fmt.Errorf("gitadapt: pairwise diff: %w", err)
	}

	oldTree, err := oldCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: pairwise diff: old tree: %w", err)
	}
	newTree, err := newCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: pairwise diff: new tree: %w", err)
	}

	diffs, err := treeDiff(oldTree, newTree)
	if err != nil {
		return nil, err
	}
	return detectRenames(diffs), nil
}

// isAncestor reports whether candidate is reachable from the history of
// descendant, i.e. candidate is an ancestor of descendant.
func (r *Repository) isAncestor(candidate, descendant string) (bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: plumbing.NewHash(descendant), Order: git.LogOrderDFS})
	if err != nil {
		return false, err
	}
	defer iter.Close()

	target := plumbing.NewHash(candidate)
	found := false
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == target {
			found = true
			return nil
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func treeDiff(from, to *object.Tree) ([]FileDiff, error) {
	var changes object.Changes
	var err error
	if from == nil {
		changes, err = object.DiffTree(nil, to)
	} else {
		changes, err = object.DiffTree(from, to)
	}
	if err != nil {
		return nil, fmt.Errorf("gitadapt: tree diff: %w", err)
	}

	out := make([]FileDiff, 0, len(changes))
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, fmt.Errorf("gitadapt: tree diff: action: %w", err)
		}

		patch, err := change.Patch()
		patchText := ""
		if err == nil && patch != nil {
			patchText = patch.String()
		}

		fd := FileDiff{Patch: patchText}
		switch action {
		case merkletrie.Insert:
			fd.NewPath = change.To.Name
			fd.Status = ItemNew
		case merkletrie.Delete:
			fd.OldPath = change.From.Name
			fd.Status = ItemDeleted
		case merkletrie.Modify:
			fd.OldPath = change.From.Name
			fd.NewPath = change.To.Name
			fd.Status = ItemModified
		}
		out = append(out, fd)
	}
	return out, nil
}

// detectRenames folds a delete+insert pair of the same blob content into a
// single Renamed entry, applying the 100% similarity threshold the spec
// requires for rename detection (spec §4.I).
func detectRenames(diffs []FileDiff) []FileDiff {
	var deletes, inserts, rest []FileDiff
	for _, d := range diffs {
		switch d.Status {
		case ItemDeleted:
			deletes = append(deletes, d)
		case ItemNew:
			inserts = append(inserts, d)
		default:
			rest = append(rest, d)
		}
	}

	usedInserts := make(map[int]bool)
	out := append([]FileDiff{}, rest...)
	for _, del := range deletes {
		renamed := false
		for i, ins := range inserts {
			if usedInserts[i] {
				continue
			}
			if del.Patch != "" && del.Patch == ins.Patch {
				out = append(out, FileDiff{
					OldPath: del.OldPath,
					NewPath: ins.NewPath,
					Status:  ItemRenamed,
					Patch:   ins.Patch,
				})
				usedInserts[i] = true
				renamed = true
				break
			}
		}
		if !renamed {
			out = append(out, del)
		}
	}
	for i, ins := range inserts {
		if !usedInserts[i] {
			out = append(out, ins)
		}
	}
	return out
}
