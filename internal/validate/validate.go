// Package validate checks that every changed file lands in exactly one group.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// Overlap is a file claimed by more than one group
type Overlap struct {
	File    string
	Tickets []string
}

// Report is the outcome of validating a grouping. It never describes a repair.
type Report struct {
	TotalFiles   int
	GroupedFiles int
	GroupCount   int
	NewTickets   int
	// Overlaps are sorted by file; one entry per file
	Overlaps []Overlap
	// Omitted changed files that no group holds, sorted
	Omitted []string
	// Extraneous grouped files that are not in the changed set, sorted
	Extraneous []string
}

// Passed reports whether the grouping has no defects
func (r Report) Passed() bool {
	return r.DefectCount() == 0
}

// DefectCount is one per overlapping file plus one per omitted or extraneous file
func (r Report) DefectCount() int {
	return len(r.Overlaps) + len(r.Omitted) + len(r.Extraneous)
}

// Err returns a DefectError when validation failed
func (r Report) Err() error {
	if r.Passed() {
		return nil
	}
	return &DefectError{Overlaps: len(r.Overlaps), Omitted: len(r.Omitted), Extraneous: len(r.Extraneous)}
}

// DefectError is returned when a grouping does not cover the changed set exactly once
type DefectError struct {
	Overlaps   int
	Omitted    int
	Extraneous int
}

func (e *DefectError) Error() string {
	var parts []string
	if e.Overlaps > 0 {
		parts = append(parts, fmt.Sprintf("%d overlapping", e.Overlaps))
	}
	if e.Omitted > 0 {
		parts = append(parts, fmt.Sprintf("%d unmatched", e.Omitted))
	}
	if e.Extraneous > 0 {
		parts = append(parts, fmt.Sprintf("%d unexpected", e.Extraneous))
	}
	return "validation failed: " + strings.Join(parts, ", ") + " files"
}

// Validate compares groups against the changed-file set. Groups are not modified.
func Validate(groups []*models.Group, changed []string) Report {
	owners := make(map[string][]string)
	rep := Report{GroupCount: len(groups)}
	for _, g := range groups {
		if g.NeedsNewTicket {
			rep.NewTickets++
		}
		for f := range g.Files {
			owners[f] = append(owners[f], g.Ticket)
		}
	}

	changedSet := models.NewFileSet(changed...)
	rep.TotalFiles = changedSet.Len()
	rep.GroupedFiles = len(owners)

	for f, tickets := range owners {
		if len(tickets) > 1 {
			sort.Strings(tickets)
			rep.Overlaps = append(rep.Overlaps, Overlap{File: f, Tickets: tickets})
		}
		if !changedSet.Has(f) {
			rep.Extraneous = append(rep.Extraneous, f)
		}
	}
	for _, f := range changedSet.Sorted() {
		if _, ok := owners[f]; !ok {
			rep.Omitted = append(rep.Omitted, f)
		}
	}

	sort.Slice(rep.Overlaps, func(i, j int) bool { return rep.Overlaps[i].File < rep.Overlaps[j].File })
	sort.Strings(rep.Extraneous)
	return rep
}
