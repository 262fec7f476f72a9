// Package sequence orders groups for emission.
//
// The order is fixed by the catalog's phase table, then priority tier, then
// ticket ID. Nothing observed at run time (file counts, commit counts, timing)
// influences it.
package sequence

import (
	"sort"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

// UnphasedName labels the catch-all phase for tickets missing from the phase table
const UnphasedName = "Unphased"

// Batch is one phase's share of the emission order
type Batch struct {
	// Index is 1-based for display
	Index  int
	Name   string
	Groups []*models.Group
}

// Order returns groups in emission order. The input is not modified.
func Order(groups []*models.Group, phases []rules.Phase) []*models.Group {
	idx := phaseIndex(phases)
	out := make([]*models.Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], idx, len(phases))
	})
	return out
}

// ByPriority orders groups by priority tier then ticket ID, ignoring phases
func ByPriority(groups []*models.Group) []*models.Group {
	return Order(groups, nil)
}

// Batches splits an ordered list into consecutive phase batches. Empty phases
// are omitted; tickets outside the phase table form a final Unphased batch.
func Batches(ordered []*models.Group, phases []rules.Phase) []Batch {
	idx := phaseIndex(phases)
	var out []Batch
	for _, g := range ordered {
		p := phaseOf(g.Ticket, idx, len(phases))
		name := UnphasedName
		if p < len(phases) {
			name = phases[p].Name
		}
		if len(out) == 0 || out[len(out)-1].Index != p+1 {
			out = append(out, Batch{Index: p + 1, Name: name})
		}
		out[len(out)-1].Groups = append(out[len(out)-1].Groups, g)
	}
	return out
}

func less(a, b *models.Group, idx map[string]int, unphased int) bool {
	pa, pb := phaseOf(a.Ticket, idx, unphased), phaseOf(b.Ticket, idx, unphased)
	if pa != pb {
		return pa < pb
	}
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	return a.Ticket < b.Ticket
}

func phaseIndex(phases []rules.Phase) map[string]int {
	idx := make(map[string]int)
	for i, p := range phases {
		for _, t := range p.Tickets {
			if _, dup := idx[t]; !dup {
				idx[t] = i
			}
		}
	}
	return idx
}

func phaseOf(ticket string, idx map[string]int, unphased int) int {
	if p, ok := idx[ticket]; ok {
		return p
	}
	return unphased
}
