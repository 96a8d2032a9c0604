// Package git provides a diff source backed by a local repository, for
// reviewing changes before they reach a pull request.
package git

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Source produces a unified diff between two refs of a local
// repository. The target ref defaults to HEAD when empty.
type Source struct {
	repoDir   string
	baseRef   string
	targetRef string
}

// NewSource constructs a diff source for the repository at repoDir.
func NewSource(repoDir, baseRef, targetRef string) *Source {
	if targetRef == "" {
		targetRef = "HEAD"
	}
	return &Source{repoDir: repoDir, baseRef: baseRef, targetRef: targetRef}
}

// GetDiff computes the patch from the base ref to the target ref.
func (s *Source) GetDiff(ctx context.Context) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(s.repoDir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}

	baseCommit, err := resolveCommit(repo, s.baseRef)
	if err != nil {
		return "", fmt.Errorf("resolve base ref %q: %w", s.baseRef, err)
	}
	targetCommit, err := resolveCommit(repo, s.targetRef)
	if err != nil {
		return "", fmt.Errorf("resolve target ref %q: %w", s.targetRef, err)
	}

	patch, err := baseCommit.PatchContext(ctx, targetCommit)
	if err != nil {
		return "", fmt.Errorf("compute patch: %w", err)
	}
	return patch.String(), nil
}

// resolveCommit tries the ref as given, then as a local branch, then as
// a remote-tracking branch on origin.
func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}
