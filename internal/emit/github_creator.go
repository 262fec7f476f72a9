package emit

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/wahlandcase/attuned.prsplit/internal/git"
	"github.com/wahlandcase/attuned.prsplit/internal/github"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// OpenPRFunc opens or updates the PR for a pushed branch. The bool result is
// true when an existing PR was updated.
type OpenPRFunc func(ctx context.Context, repoPath, head, base, title, body string, draft bool) (*models.GhPr, bool, error)

// GitHubCreator prepares a branch per group in the local working copy,
// pushes it and opens or updates the PR with the gh CLI
type GitHubCreator struct {
	Worktree *git.Worktree
	Draft    bool
	Logger   *zap.Logger
	OpenPR   OpenPRFunc
}

// NewGitHubCreator creates a creator operating on the repository at dir
func NewGitHubCreator(dir, remote string, draft bool, logger *zap.Logger) *GitHubCreator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitHubCreator{
		Worktree: git.NewWorktree(dir, remote),
		Draft:    draft,
		Logger:   logger,
		OpenPR:   github.CreateOrUpdatePR,
	}
}

// Create implements Creator. Whatever the outcome, the group's changes are
// discarded from the working copy and the base branch is checked out again,
// so a failed group never leaks into the next one. When that cleanup fails
// the returned error says so and later groups are expected to fail fast.
func (c *GitHubCreator) Create(ctx context.Context, req Request, progress func(string)) (pr *models.GhPr, updated bool, err error) {
	wt := c.Worktree
	log := c.Logger.With(zap.String("ticket", req.Group.Ticket))
	files := req.Group.Files.Sorted()

	dirty, err := wt.HasLocalChanges(ctx)
	if err != nil {
		return nil, false, errors.Wrap(err, "check working copy")
	}
	if dirty {
		return nil, false, errors.WithHintf(errors.WithStack(git.ErrLocalChanges),
			"commit or stash your changes in %s before creating PRs", wt.Dir)
	}

	progress("Checking out " + req.Base)
	if err := wt.Checkout(ctx, req.Base); err != nil {
		return nil, false, errors.Wrap(err, "checkout base")
	}
	defer func() {
		if rerr := c.restore(context.WithoutCancel(ctx), req.Base, files, err != nil); rerr != nil {
			log.Error("could not restore working copy", zap.Error(rerr))
			if err == nil {
				err = rerr
			} else {
				err = multierror.Append(err, rerr)
			}
			pr, updated = nil, false
		}
	}()

	if err := wt.Pull(ctx, req.Base); err != nil {
		log.Warn("pull failed, continuing with local base", zap.Error(err))
		if err := wt.Discard(ctx, nil); err != nil {
			return nil, false, errors.Wrap(err, "reset base after failed pull")
		}
	}

	progress("Preparing " + req.Branch)
	reused, err := wt.StartBranch(ctx, req.Branch)
	if err != nil {
		return nil, false, errors.Wrap(err, "create branch")
	}
	if reused {
		log.Info("reusing existing branch", zap.String("branch", req.Branch))
	}

	progress("Applying changes")
	applied, err := wt.ApplyDiff(ctx, req.Base, req.Source, files)
	if err != nil {
		return nil, false, err
	}
	if len(applied) == 0 {
		return nil, false, ErrNoChanges
	}
	if err := wt.Add(ctx, applied); err != nil {
		return nil, false, errors.Wrap(err, "stage changes")
	}

	progress("Committing")
	if err := wt.Commit(ctx, github.CommitMessage(req.Group)); err != nil {
		if errors.Is(err, git.ErrNothingToCommit) {
			return nil, false, ErrNoChanges
		}
		return nil, false, errors.Wrap(err, "commit")
	}

	progress("Pushing " + req.Branch)
	if err := wt.Push(ctx, req.Branch); err != nil {
		return nil, false, errors.Wrap(err, "push")
	}

	progress("Opening pull request")
	body, err := github.RenderBody(req.Group, req.Source, req.Base)
	if err != nil {
		return nil, false, err
	}
	return c.OpenPR(ctx, wt.Dir, req.Branch, req.Base, req.Group.Title, body, c.Draft)
}

// restore returns the working copy to a clean base checkout
func (c *GitHubCreator) restore(ctx context.Context, base string, files []string, failed bool) error {
	wt := c.Worktree
	if failed {
		if err := wt.Discard(ctx, files); err != nil {
			return errors.WithHintf(errors.Wrap(err, "discard group changes"),
				"run git status in %s and clean up before re-running", wt.Dir)
		}
	}
	if err := wt.Checkout(ctx, base); err != nil {
		return errors.WithHintf(errors.Wrap(err, "return to "+base),
			"run git status in %s and clean up before re-running", wt.Dir)
	}
	return nil
}
