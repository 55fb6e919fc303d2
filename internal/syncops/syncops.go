// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package syncops implements the Fetch/Push/PushTags operations spec.md
// §1 and SPEC_FULL.md §2 describe as part of the async façade's PURPOSE,
// orchestrating internal/gitadapt's remote transport, the pre-push hook
// protocol (spec §6) via internal/hooks, and the Progress Relay/Credential
// Holder machinery in internal/asyncjob. Grounded on
// original_source/asyncgit/src/sync/remotes/{fetch,push,push_tags}.rs for
// the pre-push-then-transport ordering.
package syncops

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
	"github.com/gizzahub/asyncgit/internal/hooks"
)

// HookTimeout bounds the pre-push hook invocation.
const HookTimeout = 30 * time.Second

// Options configures one fetch/push/push-tags call.
type Options struct {
	Remote      string
	Branch      string // local branch name; empty means HEAD's current branch
	Credentials asyncjob.Credentials
	HookTimeout time.Duration
	SkipHooks   bool
}

func (o Options) remote() string {
	if o.Remote == "" {
		return "origin"
	}
	return o.Remote
}

func (o Options) hookTimeout() time.Duration {
	if o.HookTimeout > 0 {
		return o.HookTimeout
	}
	return HookTimeout
}

// Fetch downloads refs from the configured remote (spec §1 "fetch...
// handled via an async façade"), publishing KindFetchProgress as transport
// progress arrives and KindFetchFinished on completion.
func Fetch(repo *gitadapt.Repository, bus *asyncjob.Bus, opts Options) (*asyncjob.Relay[string], error) {
	relay, err := repo.Fetch(opts.remote(), opts.Credentials, bus, asyncjob.KindFetchProgress)
	if err != nil {
		return relay, err
	}
	if bus != nil {
		bus.Publish(asyncjob.KindFetchFinished)
	}
	return relay, nil
}

// Push runs the pre-push hook (spec §6) and, unless it rejects, pushes the
// current (or named) branch to remote, publishing KindPushProgress as
// transport progress arrives and KindPushFinished on completion.
func Push(ctx context.Context, repo *gitadapt.Repository, bus *asyncjob.Bus, opts Options) (*asyncjob.Relay[string], error) {
	branch, err := resolveBranch(repo, opts.Branch)
	if err != nil {
		return nil, err
	}

	if !opts.SkipHooks {
		if err := runPrePush(ctx, repo, opts.remote(), branch, opts.hookTimeout()); err != nil {
			return nil, err
		}
	}

	localRef := plumbing.NewBranchReferenceName(branch)
	refspec := localRef.String() + ":" + localRef.String()
	relay, err := repo.Push(opts.remote(), []string{refspec}, opts.Credentials, bus, asyncjob.KindPushProgress)
	if err != nil {
		return relay, err
	}
	if bus != nil {
		bus.Publish(asyncjob.KindPushFinished)
	}
	return relay, nil
}

// PushTags runs the pre-push hook over every local tag, then uploads them,
// publishing KindTagsPushed on completion (spec §4.I "tag push").
func PushTags(ctx context.Context, repo *gitadapt.Repository, bus *asyncjob.Bus, opts Options) (*asyncjob.Relay[string], error) {
	if !opts.SkipHooks {
		tags, err := repo.Tags()
		if err != nil {
			return nil, err
		}
		updates := make([]hooks.PrePushRef, 0, len(tags))
		for _, t := range tags {
			ref := "refs/tags/" + t.Name
			updates = append(updates, hooks.PrePushRef{LocalRef: ref, LocalOid: t.CommitHash, RemoteRef: ref})
		}
		if err := runPrePushUpdates(ctx, repo, opts.remote(), updates, opts.hookTimeout()); err != nil {
			return nil, err
		}
	}

	relay, err := repo.PushTags(opts.remote(), opts.Credentials, bus, asyncjob.KindTagsPushed)
	if err != nil {
		return relay, err
	}
	if bus != nil {
		bus.Publish(asyncjob.KindTagsPushed)
	}
	return relay, nil
}

// resolveBranch returns branch if non-empty, otherwise the short name of
// the repository's current HEAD branch.
func resolveBranch(repo *gitadapt.Repository, branch string) (string, error) {
	if branch != "" {
		return branch, nil
	}
	head, err := repo.Raw().Head()
	if err != nil {
		return "", fmt.Errorf("syncops: resolve current branch: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("syncops: HEAD is detached, specify a branch")
	}
	return head.Name().Short(), nil
}

// runPrePush builds the single-ref update line for branch and runs the
// pre-push hook over it (spec §6's stdin/argv protocol).
func runPrePush(ctx context.Context, repo *gitadapt.Repository, remote, branch string, timeout time.Duration) error {
	localRef := plumbing.NewBranchReferenceName(branch)
	localOid := ""
	if ref, err := repo.Raw().Reference(localRef, true); err == nil {
		localOid = ref.Hash().String()
	}
	remoteOid := ""
	if ref, err := repo.Raw().Reference(plumbing.NewRemoteReferenceName(remote, branch), true); err == nil {
		remoteOid = ref.Hash().String()
	}

	update := hooks.PrePushRef{
		LocalRef:  localRef.String(),
		LocalOid:  localOid,
		RemoteRef: localRef.String(),
		RemoteOid: remoteOid,
	}
	return runPrePushUpdates(ctx, repo, remote, []hooks.PrePushRef{update}, timeout)
}

func runPrePushUpdates(ctx context.Context, repo *gitadapt.Repository, remote string, updates []hooks.PrePushRef, timeout time.Duration) error {
	url, err := repo.RemoteURL(remote)
	if err != nil {
		return err
	}

	result, err := hooks.Run(ctx, repo, repo.GitDir(), repo.Path(), hooks.PrePush,
		hooks.PrePushArgs(remote, url), hooks.PrePushStdin(updates), timeout, nil)
	if err != nil {
		return fmt.Errorf("syncops: pre-push: %w", err)
	}
	if result.Kind == hooks.TimedOut || (result.Kind == hooks.Ran && result.ExitCode != 0) {
		return fmt.Errorf("syncops: pre-push hook rejected push: %s%s", result.Stdout, result.Stderr)
	}
	return nil
}
