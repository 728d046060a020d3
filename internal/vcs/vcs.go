// Package vcs reads version control metadata for image labels.
package vcs

import (
	"github.com/go-git/go-git/v5"
)

// Revision returns the HEAD commit hash of the git repository containing dir,
// or "" when dir is not inside a repository or HEAD has no commit.
func Revision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	return head.Hash().String()
}
