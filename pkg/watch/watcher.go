// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
)

// repoState tracks the last-seen cleanliness of one watched repository, the
// only bit of canonical state this package keeps for itself — everything
// else (the actual StatusSnapshot) belongs to internal/gitadapt and is
// re-read by subscribers after the bus wakes them.
type repoState struct {
	path        string
	clean       bool
	lastEventAt time.Time
}

// Watcher monitors repository worktrees for changes using fsnotify, and when
// a check finds that a worktree's cleanliness flipped bumps the shared
// Generation and publishes
// asyncjob.KindStatus, invalidating any cached status fingerprint and
// waking UI subscribers (spec §6 "--watcher: use filesystem-notify instead
// of periodic polling").
type Watcher struct {
	bus        *asyncjob.Bus
	generation *asyncjob.Generation
	options    Options
	logger     Logger

	fswatch *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu       sync.RWMutex
	watching map[string]*repoState
}

// New creates a Watcher that publishes to bus and bumps generation whenever
// a check finds a watched worktree's cleanliness flipped.
func New(bus *asyncjob.Bus, generation *asyncjob.Generation, options Options) (*Watcher, error) {
	if options.Interval <= 0 {
		options.Interval = 2 * time.Second
	}
	if options.DebounceDuration <= 0 {
		options.DebounceDuration = 500 * time.Millisecond
	}
	if options.Logger == nil {
		options.Logger = noopLogger{}
	}

	fswatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create file watcher: %w", err)
	}

	return &Watcher{
		bus:        bus,
		generation: generation,
		options:    options,
		logger:     options.Logger,
		fswatch:    fswatch,
		watching:   make(map[string]*repoState),
	}, nil
}

// Start begins monitoring paths. Each must be a git worktree root or bare
// repository; Start opens each once to seed initial state and fails fast if
// any path is not a repository.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, w.cancel = context.WithCancel(ctx)

	for _, path := range paths {
		repo, err := gitadapt.Open(path)
		if err != nil {
			return fmt.Errorf("watch: open %s: %w", path, err)
		}
		clean, err := repo.IsWorkdirClean()
		if err != nil {
			return fmt.Errorf("watch: status %s: %w", path, err)
		}

		w.watching[path] = &repoState{path: path, clean: clean}

		if err := w.fswatch.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		w.logger.Info("watching repository: %s", path)
	}

	w.wg.Add(1)
	go w.eventLoop(ctx)
	return nil
}

// Stop halts monitoring and releases the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	err := w.fswatch.Close()
	w.mu.Unlock()

	w.wg.Wait()
	return err
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.options.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.recheckAll(ctx)
		case ev, ok := <-w.fswatch.Events:
			if !ok {
				return
			}
			w.logger.Debug("fs event: %s %s", ev.Op, ev.Name)
			w.recheck(w.ownerOf(ev.Name))
		case err, ok := <-w.fswatch.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fs watcher error: %v", err)
		}
	}
}

func (w *Watcher) recheckAll(ctx context.Context) {
	w.mu.RLock()
	paths := make([]string, 0, len(w.watching))
	for p := range w.watching {
		paths = append(paths, p)
	}
	w.mu.RUnlock()

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return
		default:
			w.recheck(p)
		}
	}
}

// recheck re-opens path's repository (spec §9 "Cyclic repository handles":
// each check opens its own handle rather than sharing one across calls),
// and publishes a status change if cleanliness flipped.
func (w *Watcher) recheck(path string) {
	if path == "" {
		return
	}

	w.mu.RLock()
	state := w.watching[path]
	w.mu.RUnlock()
	if state == nil {
		return
	}

	if time.Since(state.lastEventAt) < w.options.DebounceDuration {
		return
	}

	repo, err := gitadapt.Open(path)
	if err != nil {
		w.logger.Warn("watch: reopen %s: %v", path, err)
		return
	}
	clean, err := repo.IsWorkdirClean()
	if err != nil {
		w.logger.Warn("watch: status %s: %v", path, err)
		return
	}

	w.mu.Lock()
	changed := clean != state.clean
	state.clean = clean
	state.lastEventAt = time.Now()
	w.mu.Unlock()

	if changed {
		w.generation.Bump()
		w.bus.Publish(asyncjob.KindStatus)
	}
}

// ownerOf returns the longest watched path that prefixes filePath.
func (w *Watcher) ownerOf(filePath string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	best := ""
	for repoPath := range w.watching {
		if len(filePath) >= len(repoPath) && filePath[:len(repoPath)] == repoPath && len(repoPath) > len(best) {
			best = repoPath
		}
	}
	return best
}
