package grouping

import "github.com/wahlandcase/attuned.prsplit/internal/rules"

// Move records a documentation file dropped from the generic docs group
// because the code group it belongs with already holds it
type Move struct {
	File string
	From string
	To   string
}

// Colocate removes from the docs group every file that matches a doc link
// and already sits in one of that link's target groups. Files are never
// added anywhere. The docs group's file set is replaced, not edited in place.
func Colocate(groups Groups, links []rules.DocLink, docsTicket string) []Move {
	docs, ok := groups[docsTicket]
	if !ok || docs.Files.Len() == 0 {
		return nil
	}

	var moves []Move
	claimed := make(map[string]string)
	for _, id := range groups.Tickets() {
		if id == docsTicket {
			continue
		}
		for _, f := range groups[id].Files.Sorted() {
			if _, done := claimed[f]; done || !docs.Files.Has(f) {
				continue
			}
			for _, link := range links {
				if link.Targets(id) && link.Pattern.Match(f) {
					claimed[f] = id
					moves = append(moves, Move{File: f, From: docsTicket, To: id})
					break
				}
			}
		}
	}
	if len(claimed) == 0 {
		return nil
	}

	remaining := docs.Files.Clone()
	for f := range claimed {
		remaining.Remove(f)
	}
	docs.Files = remaining
	return moves
}
