package git

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// DefaultRemote is used when no remote name is configured
const DefaultRemote = "origin"

// Repo is an opened repository plus the remote used to resolve branch names
type Repo struct {
	// Path is the repository root
	Path string
	// Remote is tried when a name does not resolve locally
	Remote string

	repo *git.Repository
}

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FindRoot walks up from path to the nearest repository root
func FindRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for {
		if IsGitRepo(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", errors.WithHint(
				errors.Wrapf(os.ErrNotExist, "no git repository at or above %s", path),
				"run prsplit inside the repository or pass --repo",
			)
		}
		abs = parent
	}
}

// Open opens the repository containing path. An empty path means the working directory.
func Open(path, remote string) (*Repo, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = cwd
	}
	root, err := FindRoot(path)
	if err != nil {
		return nil, err
	}
	r, err := git.PlainOpen(root)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", root)
	}
	if remote == "" {
		remote = DefaultRemote
	}
	return &Repo{Path: root, Remote: remote, repo: r}, nil
}

// Resolve turns a branch name, tag or revision into a commit hash.
// Local names win; <remote>/<name> is tried as a fallback.
func (r *Repo) Resolve(name string) (plumbing.Hash, error) {
	candidates := []plumbing.Revision{
		plumbing.Revision(name),
		plumbing.Revision(plumbing.NewRemoteReferenceName(r.Remote, name).String()),
	}
	var lastErr error
	for _, rev := range candidates {
		h, err := r.repo.ResolveRevision(rev)
		if err == nil {
			return *h, nil
		}
		lastErr = err
	}
	return plumbing.ZeroHash, lastErr
}

// HasBranch checks if a branch exists locally or on the remote
func (r *Repo) HasBranch(name string) bool {
	if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
		return true
	}
	_, err := r.repo.Reference(plumbing.NewRemoteReferenceName(r.Remote, name), true)
	return err == nil
}

// CheckRefs verifies every name resolves, reporting all missing names at once
func (r *Repo) CheckRefs(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, err := r.Resolve(n); err != nil {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return branchNotFound(r.Remote, missing...)
	}
	return nil
}

// BranchStatus reports how far head and base have diverged
func (r *Repo) BranchStatus(ctx context.Context, base, head string) (*models.BranchStatus, error) {
	baseCommit, err := r.commit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := r.commit(head)
	if err != nil {
		return nil, err
	}

	baseSet, err := r.reachable(ctx, baseCommit.Hash)
	if err != nil {
		return nil, err
	}
	headSet, err := r.reachable(ctx, headCommit.Hash)
	if err != nil {
		return nil, err
	}

	status := &models.BranchStatus{
		RepoPath: r.Path,
		Source:   head,
		Base:     base,
		Ahead:    countMissing(headSet, baseSet),
		Behind:   countMissing(baseSet, headSet),
	}
	mb, err := mergeBase(baseCommit, headCommit)
	if err != nil {
		return nil, err
	}
	if mb != nil {
		status.MergeBase = mb.Hash.String()
	}
	return status, nil
}

func (r *Repo) commit(name string) (*object.Commit, error) {
	h, err := r.Resolve(name)
	if err != nil {
		return nil, branchNotFound(r.Remote, name)
	}
	c, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, errors.Wrapf(err, "load commit %s", name)
	}
	return c, nil
}

// reachable returns every commit hash reachable from from
func (r *Repo) reachable(ctx context.Context, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	set := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		set[c.Hash] = true
		return nil
	})
	return set, err
}

func countMissing(from, in map[plumbing.Hash]bool) int {
	n := 0
	for h := range from {
		if !in[h] {
			n++
		}
	}
	return n
}

// mergeBase returns the best common ancestor, or nil for unrelated histories
func mergeBase(a, b *object.Commit) (*object.Commit, error) {
	bases, err := a.MergeBase(b)
	if err != nil {
		return nil, errors.Wrap(err, "merge-base")
	}
	if len(bases) == 0 {
		return nil, nil
	}
	return bases[0], nil
}
