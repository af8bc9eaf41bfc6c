package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/patternscan/patternscan/internal/domain"
)

// GitInfoAdapter implements domain.RevisionReader using go-git.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

// IsGitRepo reports whether projectPath is inside a git work tree.
func (g *GitInfoAdapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// Revision returns the HEAD commit and, when HEAD is a branch, its short name.
func (g *GitInfoAdapter) Revision(projectPath string) (domain.Revision, error) {
	repo, err := open(projectPath)
	if err != nil {
		return domain.Revision{}, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return domain.Revision{}, fmt.Errorf("getting HEAD: %w", err)
	}

	rev := domain.Revision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}
