// Package repostate summarizes the state of the local git repository so a
// release can be gated on a clean worktree and annotated with its commit.
package repostate

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotARepository indicates the path is not inside a git repository.
var ErrNotARepository = errors.New("not a git repository")

// Summary describes the repository at release time.
type Summary struct {
	Commit string // HEAD commit hash, empty for a repository without commits
	Tag    string // tag pointing at HEAD, if any
	Dirty  bool   // uncommitted or untracked changes present
}

// Describe opens the repository containing path and reports its state.
func Describe(path string) (*Summary, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	summary := &Summary{}

	head, err := repo.Head()
	switch {
	case err == nil:
		summary.Commit = head.Hash().String()
		summary.Tag = tagAt(repo, head.Hash())
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Repository without commits; leave Commit empty.
	default:
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}
	summary.Dirty = !status.IsClean()

	return summary, nil
}

// tagAt returns the short name of a tag referencing the given commit, or ""
// when none does. Lightweight tags are matched directly; annotated tags are
// resolved through their tag object.
func tagAt(repo *gogit.Repository, hash plumbing.Hash) string {
	tags, err := repo.Tags()
	if err != nil {
		return ""
	}
	var found string
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		if ref.Hash() == hash {
			found = ref.Name().Short()
			return nil
		}
		if obj, err := repo.TagObject(ref.Hash()); err == nil && obj.Target == hash {
			found = ref.Name().Short()
		}
		return nil
	})
	return found
}
