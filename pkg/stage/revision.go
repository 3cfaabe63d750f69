package stage

import (
	"github.com/go-git/go-git/v5"
)

// Revision returns the HEAD commit of the git work tree containing dir
func Revision(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}

	head, err := repo.Head()
	if err != nil {
		return "", false
	}

	return head.Hash().String(), true
}
