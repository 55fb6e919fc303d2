// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Hunk is the blame attribution shared by a contiguous run of lines (spec
// §4.I): author, unix time, and a half-open [StartLine, EndLine) range,
// both 0-based.
type Hunk struct {
	CommitHash string
	Author     string
	UnixTime   int64
	StartLine  int
	EndLine    int
}

// BlameLine pairs one line of file text with the Hunk it belongs to.
// Blame always sets Hunk; lines of the same contiguous run share one Hunk
// value.
type BlameLine struct {
	Hunk *Hunk
	Text string
}

// FileBlame is the blame of one file as of a given commit.
type FileBlame struct {
	CommitHash string
	Path       string
	Lines      []BlameLine
}

// Blame runs a blame of path as of commitHash (HEAD if empty), normalizing
// Windows-style path separators to forward slashes before looking the
// path up (spec §4.I), grounded on
// original_source/asyncgit/src/sync/blame.rs.
func (r *Repository) Blame(path string, commitHash string) (FileBlame, error) {
	path = strings.ReplaceAll(path, "\\", "/")

	var tip *plumbing.Hash
	if commitHash != "" {
		h := plumbing.NewHash(commitHash)
		tip = &h
	} else {
		head, err := r.repo.Head()
		if err != nil {
			return FileBlame{}, fmt.Errorf("gitadapt: blame: head: %w", err)
		}
		h := head.Hash()
		tip = &h
	}

	commit, err := r.repo.CommitObject(*tip)
	if err != nil {
		return FileBlame{}, fmt.Errorf("gitadapt: blame: commit %s: %w", tip, err)
	}

	result, err := git.Blame(commit, path)
	if err != nil {
		return FileBlame{}, fmt.Errorf("gitadapt: blame %s: %w", path, err)
	}

	lines := make([]BlameLine, 0, len(result.Lines))
	var current *Hunk
	for i, line := range result.Lines {
		text := strings.TrimRight(line.Text, " \t\r\n")

		hash := line.Hash.String()
		if current == nil || current.CommitHash != hash {
			current = &Hunk{
				CommitHash: hash,
				Author:     line.Author,
				UnixTime:   line.Date.Unix(),
				StartLine:  i,
				EndLine:    i + 1,
			}
		} else {
			current.EndLine = i + 1
		}

		lines = append(lines, BlameLine{Hunk: current, Text: text})
	}

	return FileBlame{
		CommitHash: tip.String(),
		Path:       path,
		Lines:      lines,
	}, nil
}
