package models

// Group is a set of changed files bound to one ticket, emitted as one PR
type Group struct {
	// Ticket is the tracking ID (e.g., "UNOMI-139")
	Ticket string
	// Title is the display title, also used as the PR title
	Title string
	// Description is the long-form summary used in the PR body
	Description string
	// Priority tier of the group
	Priority Priority
	// Files assigned to this group
	Files FileSet
	// Commits associated with this group, oldest first
	Commits []CommitInfo
	// NeedsNewTicket is true when no tracking ticket exists yet for this group
	NeedsNewTicket bool
}

// CommitCount returns the number of associated commits
func (g *Group) CommitCount() int {
	return len(g.Commits)
}

// Status returns the ticket status label used in reports and PR bodies
func (g *Group) Status() string {
	if g.NeedsNewTicket {
		return "NEW TICKET"
	}
	return "EXISTING"
}
