package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
	"github.com/gizzahub/asyncgit/internal/gitadapt"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("hi"), 0o644))
	return dir
}

func TestUpdate_QuitOnQ(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestStartHelper_EntersRunningState(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	cmd := m.StartHelper()
	assert.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "running commit helper")
}

func TestSpinnerTick_AdvancesFrameWhileRunning(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	m.StartHelper()
	frameBefore := m.spinner.Frame()

	_, cmd := m.Update(spinnerTickMsg{})
	assert.NotNil(t, cmd)
	assert.NotEqual(t, frameBefore, m.spinner.Frame())
}

func TestSucceedHelper_ShowsResultInView(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	m.StartHelper()
	m.SucceedHelper("a helpful commit message")

	view := m.View()
	assert.Contains(t, view, "a helpful commit message")
}

func TestFailHelper_ShowsErrorInView(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	m.StartHelper()
	m.FailHelper(errors.New("boom"))

	view := m.View()
	assert.Contains(t, view, "boom")
}

func TestHandleWake_NilRepoIsNoop(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)
	m.handleWake([]asyncjob.Kind{asyncjob.KindStatus})
	assert.Nil(t, m.status)
	assert.NoError(t, m.statusErr)
}

func TestRefreshStatus_SubmitsAndPicksUpLatchResult(t *testing.T) {
	dir := initRepo(t)
	repo, err := gitadapt.Open(dir)
	require.NoError(t, err)

	m := NewModel(asyncjob.NewBus(), repo)
	m.refreshStatus()

	require.Eventually(t, func() bool {
		m.refreshStatus()
		return len(m.status) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "untracked.txt", m.status[0].Path)
}

func TestRefreshStatus_CompletedFetchBumpsGenerationSoNextPollRefetches(t *testing.T) {
	dir := initRepo(t)
	repo, err := gitadapt.Open(dir)
	require.NoError(t, err)

	m := NewModel(asyncjob.NewBus(), repo)
	before := m.generation.Load()

	require.Eventually(t, func() bool {
		m.refreshStatus()
		return m.generation.Load() > before
	}, time.Second, 5*time.Millisecond, "a completed status fetch must bump the generation (spec §4.C), or status would cache forever without --watcher")
}

func TestRefreshStatus_PendingDedupesConcurrentSubmit(t *testing.T) {
	m := NewModel(asyncjob.NewBus(), nil)

	started := make(chan struct{})
	release := make(chan struct{})
	outcome1 := m.statusLatch.Submit(1, m.dispatcher, m.bus, m.generation, asyncjob.KindStatus, func() ([]gitadapt.Item, error) {
		close(started)
		<-release
		return nil, nil
	})
	require.Equal(t, asyncjob.Accepted, outcome1)
	<-started

	outcome2 := m.statusLatch.Submit(2, m.dispatcher, m.bus, m.generation, asyncjob.KindStatus, func() ([]gitadapt.Item, error) {
		t.Fatal("a pending job must dedupe any submission, regardless of fingerprint")
		return nil, nil
	})
	assert.Equal(t, asyncjob.Deduped, outcome2)

	close(release)
}
