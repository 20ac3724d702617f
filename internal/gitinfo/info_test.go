package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initBookRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.yaml"), []byte("author: Joan Doe\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("book.yaml")
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Joan Doe", Email: "joan@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	_, err = repo.CreateTag("v1.0", hash, nil)
	require.NoError(t, err)

	return dir, repo
}

func TestDescribe(t *testing.T) {
	dir, repo := initBookRepo(t)

	head, err := repo.Head()
	require.NoError(t, err)

	rev, err := Describe(dir)
	require.NoError(t, err)

	assert.Equal(t, head.Hash().String(), rev.CommitHash)
	assert.Equal(t, head.Name().Short(), rev.Branch)
	assert.Equal(t, []string{"v1.0"}, rev.Tags)
	assert.False(t, rev.IsDirty)
	assert.Len(t, rev.ShortHash(), 7)
	assert.Equal(t, rev.Branch+"@"+rev.ShortHash()+" [v1.0]", rev.String())

	t.Run("subdirectory finds parent repository", func(t *testing.T) {
		sub := filepath.Join(dir, "chapters")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		rev, err := Describe(sub)
		require.NoError(t, err)
		assert.Equal(t, head.Hash().String(), rev.CommitHash)
	})

	t.Run("modified file marks tree dirty", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "book.yaml"), []byte("author: Someone\n"), 0o644))

		rev, err := Describe(dir)
		require.NoError(t, err)
		assert.True(t, rev.IsDirty)
		assert.Contains(t, rev.String(), "(dirty)")
	})
}

func TestRevisionString(t *testing.T) {
	r := &Revision{CommitHash: "abc", Branch: "main"}
	assert.Equal(t, "main@abc", r.String())
}
