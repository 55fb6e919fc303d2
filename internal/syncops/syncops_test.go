package syncops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
)

var testSig = object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(1700000000, 0)}

func setupRepoWithRemote(t *testing.T) (*gitadapt.Repository, string) {
	t.Helper()
	bareDir := t.TempDir()
	_, err := git.PlainInit(bareDir, true)
	require.NoError(t, err)

	dir := t.TempDir()
	raw, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = raw.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{bareDir}})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one\n"), 0o644))
	wt, err := raw.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	_, err = wt.Commit("initial", &git.CommitOptions{Author: &testSig})
	require.NoError(t, err)

	repo, err := gitadapt.Open(dir)
	require.NoError(t, err)
	return repo, bareDir
}

func writeHook(t *testing.T, repo *gitadapt.Repository, name, body string) {
	t.Helper()
	hooksDir := filepath.Join(repo.GitDir(), "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, name), []byte(body), 0o755))
}

func TestPush_PrePushHookRejectsBeforeAnyTransport(t *testing.T) {
	repo, bareDir := setupRepoWithRemote(t)
	writeHook(t, repo, "pre-push", "#!/bin/sh\nexit 1\n")

	bus := asyncjob.NewBus()
	_, err := Push(context.Background(), repo, bus, Options{Remote: "origin"})
	require.Error(t, err)

	bareRepo, err := git.PlainOpen(bareDir)
	require.NoError(t, err)
	_, err = bareRepo.Head()
	assert.Error(t, err, "the bare remote must still have no HEAD, since the rejected hook must abort before any push")
}

func TestPush_PrePushHookReceivesRefUpdateOnStdin(t *testing.T) {
	repo, _ := setupRepoWithRemote(t)
	capture := filepath.Join(t.TempDir(), "stdin.txt")
	writeHook(t, repo, "pre-push", "#!/bin/sh\ncat > "+capture+"\n")

	bus := asyncjob.NewBus()
	_, err := Push(context.Background(), repo, bus, Options{Remote: "origin"})
	require.NoError(t, err)

	data, err := os.ReadFile(capture)
	require.NoError(t, err)
	assert.Contains(t, string(data), "refs/heads/")
}

func TestPush_SkipHooksBypassesPrePush(t *testing.T) {
	repo, _ := setupRepoWithRemote(t)
	writeHook(t, repo, "pre-push", "#!/bin/sh\nexit 1\n")

	bus := asyncjob.NewBus()
	_, err := Push(context.Background(), repo, bus, Options{Remote: "origin", SkipHooks: true})
	assert.NoError(t, err, "SkipHooks must bypass a hook that would otherwise reject every push")
}

func TestFetch_SucceedsAgainstPopulatedRemote(t *testing.T) {
	repo, bareDir := setupRepoWithRemote(t)
	head, err := repo.Raw().Head()
	require.NoError(t, err)
	refspec := config.RefSpec(head.Name().String() + ":" + head.Name().String())
	require.NoError(t, repo.Raw().Push(&git.PushOptions{RemoteName: "origin", RefSpecs: []config.RefSpec{refspec}}))

	bareRepo, err := git.PlainOpen(bareDir)
	require.NoError(t, err)
	_, err = bareRepo.Head()
	require.NoError(t, err, "precondition: the bare remote must have commits to fetch")

	bus := asyncjob.NewBus()
	_, err = Fetch(repo, bus, Options{Remote: "origin"})
	assert.NoError(t, err)
}
