package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prrkit/prr/internal/adapter/git"
)

func initRepo(t *testing.T) (string, *gogit.Worktree) {
	t.Helper()
	tmp := t.TempDir()
	repo, err := gogit.PlainInit(tmp, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return tmp, worktree
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func commit(t *testing.T, worktree *gogit.Worktree, files []string, message string) {
	t.Helper()
	for _, file := range files {
		_, err := worktree.Add(file)
		require.NoError(t, err)
	}
	_, err := worktree.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Unix(0, 0),
		},
	})
	require.NoError(t, err)
}

func checkoutBranch(t *testing.T, worktree *gogit.Worktree, branch string) {
	t.Helper()
	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}))
}

func TestSource_GetDiff_BetweenBranches(t *testing.T) {
	tmp, worktree := initRepo(t)

	writeFile(t, tmp, "main.go", "package main\n\nfunc main() {\n\tprintln(\"hello\")\n}\n")
	commit(t, worktree, []string{"main.go"}, "initial")
	checkoutBranch(t, worktree, "feature")
	writeFile(t, tmp, "main.go", "package main\n\nfunc main() {\n\tprintln(\"feature\")\n}\n")
	commit(t, worktree, []string{"main.go"}, "feature change")

	source := git.NewSource(tmp, "master", "feature")
	diff, err := source.GetDiff(context.Background())

	require.NoError(t, err)
	assert.Contains(t, diff, "+++ b/main.go")
	assert.Contains(t, diff, "+\tprintln(\"feature\")")
	assert.Contains(t, diff, "-\tprintln(\"hello\")")
}

func TestSource_GetDiff_TargetDefaultsToHead(t *testing.T) {
	tmp, worktree := initRepo(t)

	writeFile(t, tmp, "a.txt", "one\n")
	commit(t, worktree, []string{"a.txt"}, "initial")
	checkoutBranch(t, worktree, "feature")
	writeFile(t, tmp, "b.txt", "two\n")
	commit(t, worktree, []string{"b.txt"}, "add b")

	source := git.NewSource(tmp, "master", "")
	diff, err := source.GetDiff(context.Background())

	require.NoError(t, err)
	assert.Contains(t, diff, "+++ b/b.txt")
	assert.Contains(t, diff, "+two")
}

func TestSource_GetDiff_IdenticalRefsIsEmpty(t *testing.T) {
	tmp, worktree := initRepo(t)

	writeFile(t, tmp, "a.txt", "one\n")
	commit(t, worktree, []string{"a.txt"}, "initial")

	source := git.NewSource(tmp, "master", "master")
	diff, err := source.GetDiff(context.Background())

	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestSource_GetDiff_UnknownBaseRef(t *testing.T) {
	tmp, worktree := initRepo(t)

	writeFile(t, tmp, "a.txt", "one\n")
	commit(t, worktree, []string{"a.txt"}, "initial")

	source := git.NewSource(tmp, "does-not-exist", "master")
	_, err := source.GetDiff(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestSource_GetDiff_NotARepository(t *testing.T) {
	source := git.NewSource(t.TempDir(), "master", "")
	_, err := source.GetDiff(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open repo")
}
