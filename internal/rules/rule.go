package rules

import "github.com/wahlandcase/attuned.prsplit/internal/models"

// Rule defines one group: its ticket, display metadata and matching patterns
type Rule struct {
	// ID is the ticket ID, unique within a registry
	ID          string
	Title       string
	Description string
	Priority    models.Priority
	// NeedsNewTicket marks rules whose ticket has not been filed yet
	NeedsNewTicket bool
	// FilePatterns are tested against repository-relative paths, in order
	FilePatterns []*Pattern
	// CommitPatterns are tested case-insensitively against commit messages, in order
	CommitPatterns []*Pattern
}

// MatchesPath reports whether any file pattern matches path
func (r *Rule) MatchesPath(path string) bool {
	for _, p := range r.FilePatterns {
		if p.Match(path) {
			return true
		}
	}
	return false
}

// MatchesMessage reports whether any commit-message pattern matches msg
func (r *Rule) MatchesMessage(msg string) bool {
	for _, p := range r.CommitPatterns {
		if p.Match(msg) {
			return true
		}
	}
	return false
}

// NewGroup creates an empty group carrying this rule's metadata
func (r *Rule) NewGroup() *models.Group {
	return &models.Group{
		Ticket:         r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Priority:       r.Priority,
		Files:          models.NewFileSet(),
		NeedsNewTicket: r.NeedsNewTicket,
	}
}
