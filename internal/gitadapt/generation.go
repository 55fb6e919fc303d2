// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import "github.com/gizzahub/asyncgit/internal/asyncjob"

// SetGeneration attaches the shared Generation counter so mutating
// operations (CheckoutBranch, DiscardChanges, and internal/commitpipe via
// BumpGeneration) can invalidate every outstanding Fingerprint Cache entry
// the moment they change repository state, rather than waiting for the
// next polled job to complete and bump it on its own (spec §3: "or the
// caller explicitly invalidates"). A Repository with no Generation
// attached simply never bumps one; BumpGeneration is then a no-op.
func (r *Repository) SetGeneration(g *asyncjob.Generation) {
	r.generation = g
}

// BumpGeneration invalidates every fingerprint computed against an
// earlier generation value. Safe to call whether or not SetGeneration was
// ever called.
func (r *Repository) BumpGeneration() {
	if r.generation != nil {
		r.generation.Bump()
	}
}
