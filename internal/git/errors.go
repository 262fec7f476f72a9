package git

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNothingToCommit is returned by Commit when the index matches HEAD
var ErrNothingToCommit = errors.New("nothing to commit")

// ErrLocalChanges is returned when the working copy has uncommitted changes
// that group branches would pick up
var ErrLocalChanges = errors.New("working copy has uncommitted changes")

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// BranchNotFoundError indicates one or more references could not be resolved
type BranchNotFoundError struct {
	Branches []string
}

func (e *BranchNotFoundError) Error() string {
	return "Branch not found: " + strings.Join(e.Branches, ", ")
}

// branchNotFound builds a BranchNotFoundError carrying a user-facing hint
func branchNotFound(remote string, branches ...string) error {
	err := errors.WithStack(&BranchNotFoundError{Branches: branches})
	return errors.WithHintf(err, "fetch the missing branches first, e.g. git fetch %s %s", remote, strings.Join(branches, " "))
}
