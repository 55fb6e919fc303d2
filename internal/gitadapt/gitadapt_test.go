package gitadapt

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSig = object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(1700000000, 0)}

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func writeAndCommit(t *testing.T, dir string, repo *git.Repository, path, content, message string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(path)
	require.NoError(t, err)

	hash, err := wt.Commit(message, &git.CommitOptions{Author: &testSig})
	require.NoError(t, err)
	return hash.String()
}

func TestStatus_NewUntrackedFile(t *testing.T) {
	dir, repo := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("hi"), 0o644))

	r := &Repository{repo: repo, path: dir}
	items, err := r.Status(ShowWorkingDir, UntrackedAll)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "untracked.txt", items[0].Path)
	assert.Equal(t, ItemNew, items[0].Status)
}

func TestStatus_ExcludesUntrackedWhenNone(t *testing.T) {
	dir, repo := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("hi"), 0o644))

	r := &Repository{repo: repo, path: dir}
	items, err := r.Status(ShowWorkingDir, UntrackedNone)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStatus_SortedByPath(t *testing.T) {
	dir, repo := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zed.txt"), []byte("z"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.txt"), []byte("a"), 0o644))

	r := &Repository{repo: repo, path: dir}
	items, err := r.Status(ShowWorkingDir, UntrackedAll)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alpha.txt", items[0].Path)
	assert.Equal(t, "zed.txt", items[1].Path)
}

func TestIsWorkdirClean(t *testing.T) {
	dir, repo := initRepo(t)
	writeAndCommit(t, dir, repo, "a.txt", "hello\n", "initial")

	r := &Repository{repo: repo, path: dir}
	clean, err := r.IsWorkdirClean()
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed\n"), 0o644))
	clean, err = r.IsWorkdirClean()
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestLog_TopologicalOrder(t *testing.T) {
	dir, repo := initRepo(t)
	first := writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	second := writeAndCommit(t, dir, repo, "a.txt", "2\n", "second")

	r := &Repository{repo: repo, path: dir}
	entries, err := r.Log("", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].Hash)
	assert.Equal(t, first, entries[1].Hash)
}

func TestLog_RespectsLimit(t *testing.T) {
	dir, repo := initRepo(t)
	writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	writeAndCommit(t, dir, repo, "a.txt", "2\n", "second")

	r := &Repository{repo: repo, path: dir}
	entries, err := r.Log("", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIsContinuous_EmptyAndSingleAreTrivial(t *testing.T) {
	r := &Repository{}
	ok, err := r.IsContinuous(nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.IsContinuous([]string{"deadbeef"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsContinuous_LinearHistory(t *testing.T) {
	dir, repo := initRepo(t)
	first := writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	second := writeAndCommit(t, dir, repo, "a.txt", "2\n", "second")
	third := writeAndCommit(t, dir, repo, "a.txt", "3\n", "third")

	r := &Repository{repo: repo, path: dir}
	ok, err := r.IsContinuous([]string{third, second, first})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsContinuous_WrongOrderFails(t *testing.T) {
	dir, repo := initRepo(t)
	first := writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	second := writeAndCommit(t, dir, repo, "a.txt", "2\n", "second")

	r := &Repository{repo: repo, path: dir}
	ok, err := r.IsContinuous([]string{first, second})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsContinuous_FalseAcrossAMergeCommit(t *testing.T) {
	dir, repo := initRepo(t)
	base := writeAndCommit(t, dir, repo, "a.txt", "base\n", "base")

	head, err := repo.Head()
	require.NoError(t, err)
	featureRef := plumbing.NewBranchReferenceName("feature")
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(featureRef, head.Hash())))

	wt, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: featureRef}))
	side := writeAndCommit(t, dir, repo, "b.txt", "side\n", "side")

	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName("master")}))
	second := writeAndCommit(t, dir, repo, "c.txt", "second\n", "second")

	mergeHash, err := wt.Commit("merge", &git.CommitOptions{
		Author:  &testSig,
		Parents: []plumbing.Hash{plumbing.NewHash(second), plumbing.NewHash(side)},
	})
	require.NoError(t, err)

	r := &Repository{repo: repo, path: dir}

	// A log walk that surfaces every reachable commit (both branches) lists
	// side in between merge and its mainline ancestors. The strictly
	// first-parent IsContinuous walk from merge only ever visits second,
	// never side, so this sequence must not be reported continuous (spec §8
	// scenario 3, §4.L).
	ok, err := r.IsContinuous([]string{mergeHash.String(), side, second, base})
	require.NoError(t, err)
	assert.False(t, ok)

	// The actual first-parent chain the merge commit belongs to remains
	// continuous.
	ok, err = r.IsContinuous([]string{mergeHash.String(), second, base})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTags_SortedByCommitTimeDescending(t *testing.T) {
	dir, repo := initRepo(t)
	first := writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("2\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("a.txt")
	require.NoError(t, err)
	laterSig := testSig
	laterSig.When = testSig.When.Add(time.Hour)
	secondHash, err := wt.Commit("second", &git.CommitOptions{Author: &laterSig})
	require.NoError(t, err)
	second := secondHash.String()

	_, err = repo.CreateTag("v1", plumbing.NewHash(first), nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("v2", plumbing.NewHash(second), &git.CreateTagOptions{
		Tagger:  &testSig,
		Message: "release two",
	})
	require.NoError(t, err)

	r := &Repository{repo: repo, path: dir}
	tags, err := r.Tags()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "v2", tags[0].Name)
	assert.True(t, tags[0].Annotated)
	assert.Equal(t, "release two", tags[0].Message)
	assert.Equal(t, "v1", tags[1].Name)
	assert.False(t, tags[1].Annotated)
}

func TestCommitDiff_RootCommitAgainstEmptyTree(t *testing.T) {
	dir, repo := initRepo(t)
	first := writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")

	r := &Repository{repo: repo, path: dir}
	diffs, err := r.CommitDiff(first)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, ItemNew, diffs[0].Status)
	assert.Equal(t, "a.txt", diffs[0].NewPath)
}

func TestCommitDiff_ModifiedAgainstParent(t *testing.T) {
	dir, repo := initRepo(t)
	writeAndCommit(t, dir, repo, "a.txt", "1\n", "first")
	second := writeAndCommit(t, dir, repo, "a.txt", "2\n", "second")

	r := &Repository{repo: repo, path: dir}
	diffs, err := r.CommitDiff(second)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, ItemModified, diffs[0].Status)
}
