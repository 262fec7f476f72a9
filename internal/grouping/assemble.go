// Package grouping turns a classification into ticket groups and
// de-duplicates documentation between them.
package grouping

import (
	"sort"

	"github.com/wahlandcase/attuned.prsplit/internal/classify"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

// Groups is keyed by ticket ID
type Groups map[string]*models.Group

// Tickets returns the group IDs in lexical order
func (g Groups) Tickets() []string {
	ids := make([]string, 0, len(g))
	for id := range g {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns the groups ordered by ticket ID
func (g Groups) List() []*models.Group {
	out := make([]*models.Group, 0, len(g))
	for _, id := range g.Tickets() {
		out = append(out, g[id])
	}
	return out
}

// Assemble builds one group per ticket that received at least one file,
// plus the catalog's fallback group when any file is unresolved.
// Files assigned to a ticket the catalog does not know go to the fallback group.
func Assemble(res classify.Result, commits []models.CommitInfo, cat *rules.Catalog) Groups {
	groups := make(Groups)
	leftover := models.NewFileSet(res.Unresolved...)

	for _, a := range res.Assignments {
		rule, ok := cat.Rules.Get(a.Ticket)
		if !ok {
			leftover.Add(a.Path)
			continue
		}
		g, exists := groups[a.Ticket]
		if !exists {
			g = rule.NewGroup()
			groups[a.Ticket] = g
		}
		g.Files.Add(a.Path)
	}

	for id, g := range groups {
		g.Commits = commitsFor(id, g.Files, commits)
	}

	if leftover.Len() > 0 {
		fb := cat.Fallback.NewGroup()
		fb.Files = leftover
		fb.Commits = fallbackCommits(leftover, commits)
		groups[fb.Ticket] = fb
	}
	return groups
}

// commitsFor returns commits that reference ticket or touch one of files
func commitsFor(ticket string, files models.FileSet, commits []models.CommitInfo) []models.CommitInfo {
	var out []models.CommitInfo
	for _, c := range commits {
		if c.References(ticket) || touchesAny(c, files) {
			out = append(out, c)
		}
	}
	return out
}

// fallbackCommits keeps commits touching a leftover file that carry no ticket at all
func fallbackCommits(files models.FileSet, commits []models.CommitInfo) []models.CommitInfo {
	var out []models.CommitInfo
	for _, c := range commits {
		if !c.HasTickets() && touchesAny(c, files) {
			out = append(out, c)
		}
	}
	return out
}

func touchesAny(c models.CommitInfo, files models.FileSet) bool {
	for _, f := range c.Files {
		if files.Has(f) {
			return true
		}
	}
	return false
}
