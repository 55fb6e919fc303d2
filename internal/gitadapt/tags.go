// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Tag is one tag reference with its resolved commit and, for annotated
// tags, its message (spec §4.I: "annotation message (if any) preserved").
type Tag struct {
	Name       string
	CommitHash string
	CommitTime int64
	Annotated  bool
	Message    string
}

// Tags enumerates every tag reference, sorted by the tagged commit's
// author time descending (spec §4.I: "tag listing with metadata sorts by
// commit time descending").
func (r *Repository) Tags() ([]Tag, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("gitadapt: tags: %w", err)
	}

	var tags []Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), "refs/tags/")

		tagObj, err := r.repo.TagObject(ref.Hash())
		switch err {
		case nil:
			commit, cErr := tagObj.Commit()
			if cErr != nil {
				return fmt.Errorf("gitadapt: tags: %s: resolve annotated: %w", name, cErr)
			}
			tags = append(tags, Tag{
				Name:       name,
				CommitHash: commit.Hash.String(),
				CommitTime: commit.Author.When.Unix(),
				Annotated:  true,
				Message:    strings.TrimRight(tagObj.Message, "\n"),
			})
		case plumbing.ErrObjectNotFound:
			commit, cErr := r.repo.CommitObject(ref.Hash())
			if cErr != nil {
				return fmt.Errorf("gitadapt: tags: %s: resolve lightweight: %w", name, cErr)
			}
			tags = append(tags, Tag{
				Name:       name,
				CommitHash: commit.Hash.String(),
				CommitTime: commit.Author.When.Unix(),
			})
		default:
			return fmt.Errorf("gitadapt: tags: %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tags, func(i, j int) bool { return tags[i].CommitTime > tags[j].CommitTime })
	return tags, nil
}
