// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package wizard provides the interactive, form-based screens that sit in
// front of the core async facade: a commit message prompt today, grounded
// on the teacher's pkg/wizard (ProfileCreateWizard, BranchCleanupWizard),
// which drives charmbracelet/huh forms the same way.
package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/gizzahub/asyncgit/internal/commitpipe"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
)

// CommitWizard prompts for a commit message and runs the Commit Pipeline
// (spec §4.J) against repo.
type CommitWizard struct {
	repo *gitadapt.Repository
}

// NewCommitWizard returns a wizard that will commit against repo.
func NewCommitWizard(repo *gitadapt.Repository) *CommitWizard {
	return &CommitWizard{repo: repo}
}

// Run prompts for a commit message, confirms, and runs the pipeline. It
// returns commitpipe.Result{} with a nil error if the user declines to
// commit.
func (w *CommitWizard) Run(ctx context.Context) (commitpipe.Result, error) {
	var message string
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Commit message").
				Description("First line is the summary; blank line then body").
				Value(&message).
				Validate(ValidateCommitMessage),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Create commit?").
				Affirmative("Yes, commit").
				Negative("No, cancel").
				Value(&confirm),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return commitpipe.Result{}, fmt.Errorf("wizard: commit form: %w", err)
	}
	if !confirm {
		return commitpipe.Result{}, nil
	}

	return commitpipe.Run(ctx, w.repo, commitpipe.Options{Message: message})
}
