package models

// BranchStatus describes how the source and base references relate
type BranchStatus struct {
	// RepoPath is the root of the working copy
	RepoPath string
	// Source is the head reference holding the changes
	Source string
	// Base is the reference the PRs will target
	Base string
	// Ahead is the number of commits in Source that are not in Base
	Ahead int
	// Behind is the number of commits in Base that are not in Source
	Behind int
	// MergeBase is the full hash of the best common ancestor, empty if none
	MergeBase string
}

// ShortMergeBase returns the first 8 characters of the merge base hash
func (b BranchStatus) ShortMergeBase() string {
	if len(b.MergeBase) > 8 {
		return b.MergeBase[:8]
	}
	return b.MergeBase
}
