// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package gitadapt

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
)

// progressWriter adapts go-git's io.Writer-shaped FetchOptions/PushOptions
// progress sink into a channel asyncjob.StartRelay can forward, coalescing
// the way the Progress Relay does elsewhere in this module (spec §4.D):
// a burst of progress lines collapses to the most recent one rather than
// blocking the transport on a slow consumer.
type progressWriter struct {
	ch chan string
}

func newProgressWriter() *progressWriter {
	return &progressWriter{ch: make(chan string, 1)}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	line := string(p)
	select {
	case w.ch <- line:
	default:
		select {
		case <-w.ch:
		default:
		}
		select {
		case w.ch <- line:
		default:
		}
	}
	return len(p), nil
}

func (w *progressWriter) close() { close(w.ch) }

// authMethod translates the Credential Holder's optional basic-auth bundle
// into the transport.AuthMethod go-git's Fetch/Push expect; a nil Basic
// leaves authentication to the transport's own defaults (e.g. an SSH agent
// for ssh:// remotes).
func authMethod(creds asyncjob.Credentials) transport.AuthMethod {
	if creds.Basic == nil {
		// A nil *githttp.BasicAuth boxed into this interface would be a
		// non-nil interface wrapping a nil pointer, which go-git treats as
		// "auth present" and then dereferences. Return a bare nil instead.
		return nil
	}
	return &githttp.BasicAuth{Username: creds.Basic.Username, Password: creds.Basic.Password}
}

// Fetch downloads refs from remote, relaying transport progress lines
// through a Progress Relay and publishing kind on bus as each line arrives
// (spec §4.D). A successful fetch bumps the Repository's attached
// Generation (spec §3), since it rewrites remote-tracking refs out from
// under every outstanding Fingerprint Cache entry.
func (r *Repository) Fetch(remote string, creds asyncjob.Credentials, bus *asyncjob.Bus, kind asyncjob.Kind) (*asyncjob.Relay[string], error) {
	w := newProgressWriter()
	relay := asyncjob.StartRelay[string](w.ch, bus, kind)

	err := r.repo.Fetch(&git.FetchOptions{
		RemoteName: remote,
		Auth:       authMethod(creds),
		Progress:   w,
		Tags:       git.AllTags,
	})
	w.close()
	relay.Join()

	if err != nil && err != git.NoErrAlreadyUpToDate {
		return relay, fmt.Errorf("gitadapt: fetch %q: %w", remote, err)
	}
	r.BumpGeneration()
	return relay, nil
}

// Push uploads refspecs to remote, relaying transport progress lines
// through a Progress Relay; an empty refspecs leaves the choice to the
// remote's configured push refspecs. Push runs no hook itself:
// internal/syncops runs the pre-push hook before calling it. Unlike Fetch,
// Push does not bump the attached Generation.
func (r *Repository) Push(remote string, refspecs []string, creds asyncjob.Credentials, bus *asyncjob.Bus, kind asyncjob.Kind) (*asyncjob.Relay[string], error) {
	specs := make([]config.RefSpec, 0, len(refspecs))
	for _, s := range refspecs {
		specs = append(specs, config.RefSpec(s))
	}

	w := newProgressWriter()
	relay := asyncjob.StartRelay[string](w.ch, bus, kind)

	err := r.repo.Push(&git.PushOptions{
		RemoteName: remote,
		RefSpecs:   specs,
		Auth:       authMethod(creds),
		Progress:   w,
	})
	w.close()
	relay.Join()

	if err != nil && err != git.NoErrAlreadyUpToDate {
		return relay, fmt.Errorf("gitadapt: push %q: %w", remote, err)
	}
	return relay, nil
}

// PushTags uploads every local tag ref to remote (spec §4.I "tag push"),
// reusing Push's relay/auth plumbing with a fixed tags refspec.
func (r *Repository) PushTags(remote string, creds asyncjob.Credentials, bus *asyncjob.Bus, kind asyncjob.Kind) (*asyncjob.Relay[string], error) {
	return r.Push(remote, []string{"refs/tags/*:refs/tags/*"}, creds, bus, kind)
}

// RemoteURL resolves the URL configured for remote, used to build the
// pre-push hook's argv (internal/hooks.PrePushArgs).
func (r *Repository) RemoteURL(remote string) (string, error) {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("gitadapt: remote %q: %w", remote, err)
	}
	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("gitadapt: remote %q has no configured URL", remote)
	}
	return urls[0], nil
}
