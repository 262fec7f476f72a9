package git

import (
	"regexp"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// ExtractTickets extracts ticket IDs from text using the given compiled regex.
// When the regex has a capture group the first group is the ticket, otherwise
// the whole match is. IDs are upper-cased, de-duplicated and kept in order of
// first appearance.
func ExtractTickets(text string, ticketRegex *regexp.Regexp) []string {
	if ticketRegex == nil {
		return nil
	}

	var tickets []string
	seen := make(map[string]bool)
	for _, match := range ticketRegex.FindAllStringSubmatch(text, -1) {
		raw := match[0]
		if len(match) > 1 && match[1] != "" {
			raw = match[1]
		}
		ticket := strings.ToUpper(raw)
		if !seen[ticket] {
			seen[ticket] = true
			tickets = append(tickets, ticket)
		}
	}
	return tickets
}

// AllTickets gets all unique tickets from a list of commits, sorted
func AllTickets(commits []models.CommitInfo) []string {
	ticketSet := make(map[string]bool)
	for _, commit := range commits {
		for _, ticket := range commit.Tickets {
			ticketSet[ticket] = true
		}
	}

	tickets := make([]string, 0, len(ticketSet))
	for ticket := range ticketSet {
		tickets = append(tickets, ticket)
	}
	sort.Strings(tickets)
	return tickets
}
