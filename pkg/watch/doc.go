// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package watch implements the `--watcher` flag (spec §6): filesystem-notify
// driven change detection in place of periodic polling. Grounded on the
// teacher's pkg/watch polling/debounce design, adapted so that a detected
// change that flips a worktree's cleanliness bumps the shared Generation and
// publishes an asyncjob.Bus notification (subscribers then re-submit their own
// Job Latch requests), rather than the teacher's own Event/Status model —
// the canonical status now lives in internal/gitadapt and internal/asyncjob,
// so this package's only job is "notice, debounce, and wake".
//
// # Usage
//
//	w, err := watch.New(bus, generation, watch.Options{Interval: 2 * time.Second})
//	err = w.Start(ctx, []string{repoPath})
//	defer w.Stop()
package watch
