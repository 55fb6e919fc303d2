// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package commitpipe implements the Commit Pipeline (spec §4.J): the
// guarded sequence of pre-commit hook, message prettification, commit-msg
// hook, commit object creation (optionally SSH-signed), and post-commit
// hook. Grounded on original_source/asyncgit/src/sync/commit.rs for the
// signature/signing policy and internal/hooks for the hook steps.
package commitpipe

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/gizzahub/asyncgit/internal/gitadapt"
	"github.com/gizzahub/asyncgit/internal/hooks"
)

const editMsgFile = "COMMIT_EDITMSG"

// HookTimeout bounds each lifecycle hook invocation.
const HookTimeout = 30 * time.Second

// Options configures one commit.
type Options struct {
	Message     string
	SigningKey  []byte // raw SSH private key bytes; nil disables signing
	HookTimeout time.Duration
	SkipHooks   bool
}

// Result is what the pipeline produced, plus any non-fatal hook
// diagnostics the caller should surface (spec §4.J step 5: post-commit
// failure is logged and surfaced but does not undo the commit).
type Result struct {
	CommitHash     string
	PostCommitWarn error
}

// Run executes the full pipeline against repo (spec §4.J). It aborts
// before creating a commit if pre-commit rejects, or if the commit-msg
// hook rejects the (possibly rewritten) message. A successful commit
// bumps repo's attached Generation (spec §3: "incremented each time a
// completed job mutates repository state"), invalidating every
// outstanding Fingerprint Cache entry immediately rather than waiting for
// the next polled job to notice.
func Run(ctx context.Context, repo *gitadapt.Repository, opts Options) (Result, error) {
	gitDir := repo.GitDir()
	workDir := repo.Path()
	timeout := opts.HookTimeout
	if timeout <= 0 {
		timeout = HookTimeout
	}

	if !opts.SkipHooks {
		result, err := hooks.Run(ctx, repo, gitDir, workDir, hooks.PreCommit, nil, nil, timeout, nil)
		if err != nil {
			return Result{}, fmt.Errorf("commitpipe: pre-commit: %w", err)
		}
		if rejected(result) {
			return Result{}, fmt.Errorf("commitpipe: pre-commit hook rejected commit: %s%s", result.Stdout, result.Stderr)
		}
	}

	message := Prettify(opts.Message)

	if !opts.SkipHooks {
		editMsgPath := filepath.Join(gitDir, editMsgFile)
		if err := os.WriteFile(editMsgPath, []byte(message+"\n"), 0o644); err != nil {
			return Result{}, fmt.Errorf("commitpipe: write %s: %w", editMsgFile, err)
		}

		result, err := hooks.Run(ctx, repo, gitDir, workDir, hooks.CommitMsg, []string{editMsgPath}, nil, timeout, nil)
		if err != nil {
			return Result{}, fmt.Errorf("commitpipe: commit-msg: %w", err)
		}
		if rejected(result) {
			return Result{}, fmt.Errorf("commitpipe: commit-msg hook rejected commit: %s%s", result.Stdout, result.Stderr)
		}

		rewritten, err := os.ReadFile(editMsgPath)
		if err != nil {
			return Result{}, fmt.Errorf("commitpipe: re-read %s: %w", editMsgFile, err)
		}
		message = Prettify(string(rewritten))
	}

	hash, err := create(repo, message, opts.SigningKey)
	if err != nil {
		return Result{}, err
	}

	repo.BumpGeneration()

	res := Result{CommitHash: hash}

	if !opts.SkipHooks {
		hookResult, err := hooks.Run(ctx, repo, gitDir, workDir, hooks.PostCommit, nil, nil, timeout, nil)
		if err != nil {
			res.PostCommitWarn = fmt.Errorf("commitpipe: post-commit: %w", err)
		} else if rejected(hookResult) {
			res.PostCommitWarn = fmt.Errorf("commitpipe: post-commit hook failed: %s%s", hookResult.Stdout, hookResult.Stderr)
		}
	}

	return res, nil
}

// rejected reports whether a hook ran and failed, or timed out. A missing
// hook (hooks.NoHook) is success, per spec §4.J step 1.
func rejected(result hooks.Result) bool {
	return result.Kind == hooks.TimedOut || (result.Kind == hooks.Ran && result.ExitCode != 0)
}

// create builds the tree and commit via go-git's own worktree commit path
// (mirroring git2's index.write_tree()+repo.commit() pair in
// original_source/asyncgit/src/sync/commit.rs), then, if SSH signing is
// configured, re-signs the freshly created commit and repoints the current
// branch at the signed replacement, following the Rust original's
// repo.commit_create_buffer()+commit_signed() split.
func create(repo *gitadapt.Repository, message string, signingKey []byte) (string, error) {
	raw := repo.Raw()

	sig, err := signature(repo)
	if err != nil {
		return "", fmt.Errorf("commitpipe: signature: %w", err)
	}

	wt, err := raw.Worktree()
	if err != nil {
		return "", fmt.Errorf("commitpipe: worktree: %w", err)
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: &sig, Committer: &sig})
	if err != nil {
		return "", fmt.Errorf("commitpipe: commit: %w", err)
	}

	useSSH := false
	if format, ok := repo.ConfigString("gpg.format"); ok && format == "ssh" && len(signingKey) > 0 {
		useSSH = true
	}
	if !useSSH {
		return hash.String(), nil
	}

	signedHash, err := resign(raw, hash, signingKey)
	if err != nil {
		return "", err
	}
	return signedHash.String(), nil
}

func resign(raw *git.Repository, hash plumbing.Hash, signingKey []byte) (plumbing.Hash, error) {
	commit, err := raw.CommitObject(hash)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: load commit to sign: %w", err)
	}

	buf, err := encodeCommit(commit)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: encode commit buffer: %w", err)
	}
	pemSig, err := signSSH(signingKey, buf)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	commit.PGPSignature = pemSig

	obj := raw.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: encode signed commit: %w", err)
	}
	signedHash, err := raw.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: store signed commit: %w", err)
	}

	head, err := raw.Reference(plumbing.HEAD, false)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: HEAD is detached, cannot repoint to signed commit")
	}
	ref := plumbing.NewHashReference(head.Target(), signedHash)
	if err := raw.Storer.SetReference(ref); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("commitpipe: repoint %s: %w", head.Target(), err)
	}
	return signedHash, nil
}

// signature resolves the commit author/committer identity from repo
// config, falling back to "unknown" when user.name is unset but
// user.email is present (spec §4.J: "Signature resolution").
func signature(repo *gitadapt.Repository) (object.Signature, error) {
	email, hasEmail := repo.ConfigString("user.email")
	if !hasEmail {
		return object.Signature{}, fmt.Errorf("user.email is not configured")
	}
	name, hasName := repo.ConfigString("user.name")
	if !hasName {
		name = "unknown"
	}
	return object.Signature{Name: name, Email: email, When: time.Now()}, nil
}

// encodeCommit renders the commit buffer that gets signed, using an
// in-memory object store so this never touches the real object database
// before the signature is computed.
func encodeCommit(commit *object.Commit) ([]byte, error) {
	obj := memory.NewStorage().NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return nil, err
	}
	reader, err := obj.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
