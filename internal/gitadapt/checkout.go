// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CheckoutMode selects what happens to uncommitted changes when switching
// branches, grounded on original_source/src/popups/checkout_option.rs's
// CheckoutOptions::{Unchange, Discard}: the popup lets the user choose
// whether the checkout should fail on conflicting local changes
// (KeepChanges) or discard them first (DiscardChanges).
type CheckoutMode int

const (
	// KeepChanges performs a plain checkout; go-git refuses it if the
	// target branch would overwrite a locally modified file.
	KeepChanges CheckoutMode = iota
	// DiscardChanges resets the worktree to HEAD before checking out,
	// discarding uncommitted changes the way `discard_status` does in the
	// original.
	DiscardChanges
)

// CheckoutBranch switches the worktree to branch under mode (spec §5
// "Checkout/reset option spectrum").
func (r *Repository) CheckoutBranch(branch string, mode CheckoutMode) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitadapt: checkout: worktree: %w", err)
	}

	if mode == DiscardChanges {
		if err := r.DiscardChanges(); err != nil {
			return err
		}
	}

	ref := plumbing.NewBranchReferenceName(branch)
	if err := wt.Checkout(&git.CheckoutOptions{Branch: ref}); err != nil {
		return fmt.Errorf("gitadapt: checkout %q: %w", branch, err)
	}
	r.BumpGeneration()
	return nil
}

// DiscardChanges resets both the index and the worktree to HEAD,
// discarding all uncommitted changes (spec §5's `discard_status`
// equivalent).
func (r *Repository) DiscardChanges() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitadapt: discard: worktree: %w", err)
	}
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("gitadapt: discard: head: %w", err)
	}
	if err := wt.Reset(&git.ResetOptions{Commit: head.Hash(), Mode: git.HardReset}); err != nil {
		return fmt.Errorf("gitadapt: discard: reset: %w", err)
	}
	r.BumpGeneration()
	return nil
}
