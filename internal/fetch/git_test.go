package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	testInitLogger()
}

// newSourceRepo creates a real git repository in a temp directory with
// metrics.rs at three points: a v1.0.0 tag, a dev branch, and the
// default branch HEAD. Clones use the local path, so no network.
func newSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err, "init source repo")

	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(content, msg string) plumbing.Hash {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "metrics.rs"), []byte(content), 0644))
		_, err := wt.Add("metrics.rs")
		require.NoError(t, err)
		hash, err := wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "test",
				Email: "test@test.com",
				When:  time.Now(),
			},
		})
		require.NoError(t, err)
		return hash
	}

	tagged := commit("// tagged\n", "tagged release")
	_, err = repo.CreateTag("v1.0.0", tagged, nil)
	require.NoError(t, err)

	commit("// head\n", "head commit")

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("dev"),
		Create: true,
	})
	require.NoError(t, err)
	commit("// dev\n", "dev commit")

	// Leave HEAD on the default branch so empty-ref clones are
	// deterministic.
	err = wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName("master")})
	require.NoError(t, err)

	return dir
}

func TestGitSourceFetchTag(t *testing.T) {
	gs := &GitSource{Repo: newSourceRepo(t), Ref: "v1.0.0", Path: "metrics.rs"}

	data, err := gs.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "// tagged\n", string(data))
}

func TestGitSourceFetchBranch(t *testing.T) {
	gs := &GitSource{Repo: newSourceRepo(t), Ref: "dev", Path: "metrics.rs"}

	data, err := gs.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "// dev\n", string(data))
}

func TestGitSourceFetchDefaultHead(t *testing.T) {
	gs := &GitSource{Repo: newSourceRepo(t), Ref: "", Path: "metrics.rs"}

	data, err := gs.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "// head\n", string(data))
}

func TestGitSourceUnknownRef(t *testing.T) {
	gs := &GitSource{Repo: newSourceRepo(t), Ref: "no-such-ref", Path: "metrics.rs"}

	_, err := gs.Fetch(context.Background())
	require.Error(t, err)

	var gitErr *GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "no-such-ref", gitErr.Ref)
}

func TestGitSourceMissingPath(t *testing.T) {
	gs := &GitSource{Repo: newSourceRepo(t), Ref: "v1.0.0", Path: "src/missing.rs"}

	_, err := gs.Fetch(context.Background())
	require.Error(t, err)

	var gitErr *GitError
	require.ErrorAs(t, err, &gitErr)
	assert.Equal(t, "src/missing.rs", gitErr.Path)
	assert.Error(t, gitErr.Err)
}
