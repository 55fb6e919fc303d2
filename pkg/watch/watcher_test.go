package watch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gizzahub/asyncgit/internal/asyncjob"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run())
	}
	run("init")
	run("config", "user.name", "Test")
	run("config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi\n"), 0o644))
	run("add", "a.txt")
	run("commit", "-m", "initial")
	return dir
}

func TestNew_AppliesDefaults(t *testing.T) {
	w, err := New(asyncjob.NewBus(), &asyncjob.Generation{}, Options{})
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, 2*time.Second, w.options.Interval)
	assert.Equal(t, 500*time.Millisecond, w.options.DebounceDuration)
}

func TestStart_RejectsNonRepository(t *testing.T) {
	w, err := New(asyncjob.NewBus(), &asyncjob.Generation{}, Options{})
	require.NoError(t, err)
	defer w.Stop()

	err = w.Start(context.Background(), []string{t.TempDir()})
	assert.Error(t, err)
}

func TestStart_SeedsWatchState(t *testing.T) {
	dir := initRepo(t)
	w, err := New(asyncjob.NewBus(), &asyncjob.Generation{}, Options{})
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(context.Background(), []string{dir}))

	w.mu.RLock()
	state := w.watching[dir]
	w.mu.RUnlock()
	require.NotNil(t, state)
	assert.True(t, state.clean)
}

func TestRecheck_PublishesOnDirtyTransition(t *testing.T) {
	dir := initRepo(t)
	gen := &asyncjob.Generation{}
	bus := asyncjob.NewBus()
	sub := bus.Subscribe()

	w, err := New(bus, gen, Options{DebounceDuration: 0})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background(), []string{dir}))

	before := gen.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("new\n"), 0o644))

	w.recheck(dir)

	assert.Greater(t, gen.Load(), before)
	kinds := sub.Drain()
	assert.Contains(t, kinds, asyncjob.KindStatus)
}

func TestRecheck_DebounceSkipsRapidRechecks(t *testing.T) {
	dir := initRepo(t)
	gen := &asyncjob.Generation{}
	w, err := New(asyncjob.NewBus(), gen, Options{DebounceDuration: time.Minute})
	require.NoError(t, err)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background(), []string{dir}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("new\n"), 0o644))
	w.recheck(dir)
	firstGen := gen.Load()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("new\n"), 0o644))
	w.recheck(dir)

	assert.Equal(t, firstGen, gen.Load())
}

func TestOwnerOf_PicksLongestPrefix(t *testing.T) {
	w := &Watcher{watching: map[string]*repoState{
		"/repos/a":   {path: "/repos/a"},
		"/repos/a/b": {path: "/repos/a/b"},
	}}

	assert.Equal(t, "/repos/a/b", w.ownerOf("/repos/a/b/file.go"))
	assert.Equal(t, "/repos/a", w.ownerOf("/repos/a/file.go"))
	assert.Equal(t, "", w.ownerOf("/elsewhere/file.go"))
}

func TestStop_WithoutStartIsSafe(t *testing.T) {
	w, err := New(asyncjob.NewBus(), &asyncjob.Generation{}, Options{})
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
}
