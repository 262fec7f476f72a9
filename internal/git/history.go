package git

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// History reads commits and changed files from a repository
type History struct {
	repo        *Repo
	ticketRegex *regexp.Regexp
}

// NewHistory creates a history provider; ticketRegex extracts ticket IDs from messages
func NewHistory(repo *Repo, ticketRegex *regexp.Regexp) *History {
	return &History{repo: repo, ticketRegex: ticketRegex}
}

// ListCommits returns commits reachable from head but not from base, oldest
// first by committer time. Each commit lists the paths it changed relative to
// its first parent; merge commits list none.
func (h *History) ListCommits(ctx context.Context, base, head string) ([]models.CommitInfo, error) {
	baseCommit, err := h.repo.commit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := h.repo.commit(head)
	if err != nil {
		return nil, err
	}

	baseCommits, err := h.repo.reachable(ctx, baseCommit.Hash)
	if err != nil {
		return nil, err
	}

	headIter, err := h.repo.repo.Log(&git.LogOptions{From: headCommit.Hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer headIter.Close()

	var commits []models.CommitInfo
	seen := make(map[plumbing.Hash]bool)
	err = headIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Don't stop iteration: merge commits have multiple parents and
		// feature commits can sit behind any of them.
		if seen[c.Hash] || baseCommits[c.Hash] {
			return nil
		}
		seen[c.Hash] = true

		files, err := changedInCommit(ctx, c)
		if err != nil {
			return errors.Wrapf(err, "files of %s", c.Hash.String()[:8])
		}
		// Tickets come from the subject, the same text message patterns see
		message := strings.Split(c.Message, "\n")[0]
		tickets := ExtractTickets(message, h.ticketRegex)
		commits = append(commits, models.NewCommitInfo(c.Hash.String(), message, files, tickets))
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	return commits, nil
}

// ListChangedFiles returns the paths that differ between the merge base of
// base and head and head itself, sorted
func (h *History) ListChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	baseCommit, err := h.repo.commit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := h.repo.commit(head)
	if err != nil {
		return nil, err
	}

	var fromTree *object.Tree
	mb, err := mergeBase(baseCommit, headCommit)
	if err != nil {
		return nil, err
	}
	if mb != nil {
		if fromTree, err = mb.Tree(); err != nil {
			return nil, err
		}
	}
	toTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}

	files, err := diffNames(ctx, fromTree, toTree)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func changedInCommit(ctx context.Context, c *object.Commit) ([]string, error) {
	if c.NumParents() > 1 {
		return nil, nil
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	var parentTree *object.Tree
	if c.NumParents() == 1 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, err
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, err
		}
	}
	return diffNames(ctx, parentTree, tree)
}

// diffNames lists changed paths; a rename reports only its new name
func diffNames(ctx context.Context, from, to *object.Tree) ([]string, error) {
	changes, err := object.DiffTreeWithOptions(ctx, from, to, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(changes))
	for _, ch := range changes {
		name := ch.To.Name
		if name == "" {
			name = ch.From.Name
		}
		names = append(names, name)
	}
	return names, nil
}
