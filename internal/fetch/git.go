package fetch

import (
	"context"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/util"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/schmitthub/fcgen/internal/logger"
)

// GitSource reads a single file out of a git remote at a given ref.
// The clone is shallow and lands in an in-memory filesystem; nothing
// touches disk.
type GitSource struct {
	Repo string // remote URL
	Ref  string // branch or tag name; empty means the remote HEAD
	Path string // in-repo path of the file to read
}

// Fetch clones the repo at the requested ref and returns the file contents.
func (s *GitSource) Fetch(ctx context.Context) ([]byte, error) {
	refNames := []plumbing.ReferenceName{""}
	if s.Ref != "" {
		// A bare name can be either; try tag first (release refs are the
		// common case for pinning metrics.rs), then branch.
		refNames = []plumbing.ReferenceName{
			plumbing.NewTagReferenceName(s.Ref),
			plumbing.NewBranchReferenceName(s.Ref),
		}
		if plumbing.ReferenceName(s.Ref).Validate() == nil {
			refNames = append([]plumbing.ReferenceName{plumbing.ReferenceName(s.Ref)}, refNames...)
		}
	}

	var lastErr error
	for _, refName := range refNames {
		fs := memfs.New()
		_, err := gogit.CloneContext(ctx, memory.NewStorage(), fs, &gogit.CloneOptions{
			URL:           s.Repo,
			ReferenceName: refName,
			SingleBranch:  true,
			Depth:         1,
			Tags:          gogit.NoTags,
		})
		if err != nil {
			lastErr = err
			logger.Debug().
				Str("repo", s.Repo).
				Str("ref", refName.String()).
				Err(err).
				Msg("clone attempt failed")
			continue
		}

		data, err := util.ReadFile(fs, s.Path)
		if err != nil {
			return nil, &GitError{Repo: s.Repo, Ref: s.Ref, Path: s.Path, Err: err}
		}
		return data, nil
	}

	return nil, &GitError{Repo: s.Repo, Ref: s.Ref, Path: s.Path, Err: lastErr}
}
