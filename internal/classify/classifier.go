// Package classify assigns each changed file to at most one ticket.
package classify

import (
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

// Assignment records which ticket claimed a file and how
type Assignment struct {
	Path   string
	Ticket string
	Tier   Tier
}

// Result is the outcome of classifying a changed-file set
type Result struct {
	// Assignments in input order, resolved files only
	Assignments []Assignment
	// Unresolved files in input order
	Unresolved []string
}

// Tickets returns the file-to-ticket map
func (r Result) Tickets() map[string]string {
	m := make(map[string]string, len(r.Assignments))
	for _, a := range r.Assignments {
		m[a.Path] = a.Ticket
	}
	return m
}

// CountByTier returns how many files each tier resolved
func (r Result) CountByTier() map[Tier]int {
	counts := make(map[Tier]int)
	for _, a := range r.Assignments {
		counts[a.Tier]++
	}
	if len(r.Unresolved) > 0 {
		counts[TierUnresolved] = len(r.Unresolved)
	}
	return counts
}

// Classifier runs a resolver chain; the first resolver to answer wins
type Classifier struct {
	chain []Resolver
}

// New creates a classifier. With no resolvers the default chain over reg is used.
func New(reg *rules.Registry, resolvers ...Resolver) *Classifier {
	if len(resolvers) == 0 {
		resolvers = DefaultChain(reg)
	}
	return &Classifier{chain: resolvers}
}

// Classify resolves one path against the full commit list
func (c *Classifier) Classify(path string, commits []models.CommitInfo) (Assignment, bool) {
	return c.resolve(path, touching(path, commits))
}

// ClassifyAll resolves every path. Duplicate paths are classified once.
func (c *Classifier) ClassifyAll(paths []string, commits []models.CommitInfo) Result {
	byPath := indexCommits(commits)
	seen := make(map[string]struct{}, len(paths))

	var res Result
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if a, ok := c.resolve(p, byPath[p]); ok {
			res.Assignments = append(res.Assignments, a)
		} else {
			res.Unresolved = append(res.Unresolved, p)
		}
	}
	return res
}

func (c *Classifier) resolve(path string, touching []models.CommitInfo) (Assignment, bool) {
	for _, r := range c.chain {
		if ticket, ok := r.Resolve(path, touching); ok {
			return Assignment{Path: path, Ticket: ticket, Tier: r.Tier()}, true
		}
	}
	return Assignment{Path: path, Tier: TierUnresolved}, false
}

func touching(path string, commits []models.CommitInfo) []models.CommitInfo {
	var out []models.CommitInfo
	for _, c := range commits {
		if c.Touches(path) {
			out = append(out, c)
		}
	}
	return out
}

// indexCommits maps each path to the commits touching it, preserving commit order
func indexCommits(commits []models.CommitInfo) map[string][]models.CommitInfo {
	idx := make(map[string][]models.CommitInfo)
	for _, c := range commits {
		seen := make(map[string]struct{}, len(c.Files))
		for _, f := range c.Files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			idx[f] = append(idx[f], c)
		}
	}
	return idx
}
