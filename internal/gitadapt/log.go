// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// CommitInfo is the stable domain representation of one commit, used by
// both the log walk and the blame/tag adapters.
type CommitInfo struct {
	Hash         string
	Author       string
	AuthorEmail  string
	UnixTime     int64
	Summary      string
	Message      string
	ParentHashes []string
}

func commitInfoOf(c *object.Commit) CommitInfo {
	parents := make([]string, 0, c.NumParents())
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}
	summary, _, _ := strings.Cut(c.Message, "\n")
	return CommitInfo{
		Hash:         c.Hash.String(),
		Author:       c.Author.Name,
		AuthorEmail:  c.Author.Email,
		UnixTime:     c.Author.When.Unix(),
		Summary:      strings.TrimSpace(summary),
		Message:      c.Message,
		ParentHashes: parents,
	}
}

// Log walks commits reachable from fromHash (HEAD if empty) in topological
// order, stopping after limit commits (0 means unbounded) (spec §4.I: "Log
// Walk produces commit-ids in topological order").
func (r *Repository) Log(fromHash string, limit int) ([]CommitInfo, error) {
	from, err := r.resolveHash(fromHash)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: from, Order: git.LogOrderDFS})
	if err != nil {
		return nil, fmt.Errorf("gitadapt: log: %w", err)
	}
	defer iter.Close()

	var out []CommitInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(out) >= limit {
			return storer.ErrStop
		}
		out = append(out, commitInfoOf(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gitadapt: log: walk: %w", err)
	}
	return out, nil
}

// CommitInfos resolves a set of commit hashes to CommitInfo, in the order
// requested (spec §4.I, blame adapter's use of "get_commits_info").
func (r *Repository) CommitInfos(hashes []string) ([]CommitInfo, error) {
	out := make([]CommitInfo, 0, len(hashes))
	for _, h := range hashes {
		hash, err := r.resolveHash(h)
		if err != nil {
			return nil, err
		}
		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("gitadapt: commit info %s: %w", h, err)
		}
		out = append(out, commitInfoOf(c))
	}
	return out, nil
}

func (r *Repository) resolveHash(hash string) (plumbing.Hash, error) {
	if hash == "" {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("gitadapt: head: %w", err)
		}
		return head.Hash(), nil
	}
	return plumbing.NewHash(hash), nil
}
