// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// ItemType is the normalized kind of change carried by a StatusItem (spec
// §4.I). It collapses go-git's StatusCode pairs (one per side: index and
// worktree) the same way the original collapses git2::Status's bitflags.
type ItemType int

const (
	ItemUnmodified ItemType = iota
	ItemNew
	ItemModified
	ItemDeleted
	ItemRenamed
	ItemTypeChanged
	ItemConflicted
)

// Item is one path's normalized status.
type Item struct {
	Path   string
	Status ItemType
}

// Show selects which comparison produces the status list (spec §4.I:
// "WorkingDir / Stage / Both correspond to worktree-vs-index,
// HEAD-tree-vs-index, and union").
type Show int

const (
	ShowWorkingDir Show = iota
	ShowStage
	ShowBoth
)

// Untracked controls how untracked files are reported, mirroring git's
// status.showUntrackedFiles values.
type Untracked int

const (
	UntrackedAll Untracked = iota
	UntrackedNormal
	UntrackedNone
)

// Status returns the repository's status per show and untracked, sorted by
// filesystem-lexicographic path order (spec §4.I).
func (r *Repository) Status(show Show, untracked Untracked) ([]Item, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: status: worktree: %w", err)
	}

	raw, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: status: %w", err)
	}

	items := make([]Item, 0, len(raw))
	for path, fileStatus := range raw {
		staging := fileStatus.Staging
		worktree := fileStatus.Worktree

		if untracked == UntrackedNone && (staging == git.Untracked || worktree == git.Untracked) {
			continue
		}

		var itemType ItemType
		switch show {
		case ShowStage:
			itemType = fromStatusCode(staging)
			if staging == git.Unmodified {
				continue
			}
		case ShowWorkingDir:
			itemType = fromStatusCode(worktree)
			if worktree == git.Unmodified {
				continue
			}
		default:
			if staging != git.Unmodified {
				itemType = fromStatusCode(staging)
			} else if worktree != git.Unmodified {
				itemType = fromStatusCode(worktree)
			} else {
				continue
			}
		}

		items = append(items, Item{Path: path, Status: itemType})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// IsWorkdirClean reports whether neither the index nor the working tree
// has outstanding changes (spec §4.I: bare repositories with no
// worktree are always clean).
func (r *Repository) IsWorkdirClean() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return true, nil
	}
	raw, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("gitadapt: is workdir clean: %w", err)
	}
	return raw.IsClean(), nil
}

func fromStatusCode(code git.StatusCode) ItemType {
	switch code {
	case git.Added, git.Untracked, git.Copied:
		return ItemNew
	case git.Deleted:
		return ItemDeleted
	case git.Renamed:
		return ItemRenamed
	case git.UpdatedButUnmerged:
		return ItemConflicted
	case git.Modified:
		return ItemModified
	default:
		return ItemUnmodified
	}
}
