package classify

import (
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

// Tier identifies which resolution strategy claimed a file
type Tier int

const (
	TierUnresolved Tier = iota
	TierCommitTicket
	TierPathPattern
	TierMessagePattern
)

func (t Tier) String() string {
	switch t {
	case TierCommitTicket:
		return "commit-ticket"
	case TierPathPattern:
		return "path-pattern"
	case TierMessagePattern:
		return "message-pattern"
	default:
		return "unresolved"
	}
}

// Resolver is one step of the classification chain.
// touching holds the commits that modified path, oldest first.
type Resolver interface {
	Tier() Tier
	Resolve(path string, touching []models.CommitInfo) (ticket string, ok bool)
}

// CommitTicketResolver picks the first ticket, in commit order, that a
// touching commit references and the registry knows about
type CommitTicketResolver struct {
	Rules *rules.Registry
}

func (CommitTicketResolver) Tier() Tier { return TierCommitTicket }

func (r CommitTicketResolver) Resolve(_ string, touching []models.CommitInfo) (string, bool) {
	for _, c := range touching {
		for _, t := range c.Tickets {
			if r.Rules.Has(t) {
				return t, true
			}
		}
	}
	return "", false
}

// PathPatternResolver picks the first rule, in registry order, with a
// file pattern matching the path
type PathPatternResolver struct {
	Rules *rules.Registry
}

func (PathPatternResolver) Tier() Tier { return TierPathPattern }

func (r PathPatternResolver) Resolve(path string, _ []models.CommitInfo) (string, bool) {
	for _, rule := range r.Rules.Rules() {
		if rule.MatchesPath(path) {
			return rule.ID, true
		}
	}
	return "", false
}

// MessagePatternResolver walks touching commits in order and picks the
// first rule whose commit pattern matches the commit message
type MessagePatternResolver struct {
	Rules *rules.Registry
}

func (MessagePatternResolver) Tier() Tier { return TierMessagePattern }

func (r MessagePatternResolver) Resolve(_ string, touching []models.CommitInfo) (string, bool) {
	ordered := r.Rules.Rules()
	for _, c := range touching {
		for _, rule := range ordered {
			if rule.MatchesMessage(c.Message) {
				return rule.ID, true
			}
		}
	}
	return "", false
}

// DefaultChain returns the standard precedence: commit tickets, then
// path patterns, then commit-message patterns
func DefaultChain(reg *rules.Registry) []Resolver {
	return []Resolver{
		CommitTicketResolver{Rules: reg},
		PathPatternResolver{Rules: reg},
		MessagePatternResolver{Rules: reg},
	}
}
