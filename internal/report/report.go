// Package report prints human-readable run output with lipgloss styling.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wahlandcase/attuned.prsplit/internal/classify"
	"github.com/wahlandcase/attuned.prsplit/internal/grouping"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/sequence"
	"github.com/wahlandcase/attuned.prsplit/internal/ui"
	"github.com/wahlandcase/attuned.prsplit/internal/validate"
)

const (
	unmatchedSample  = 5
	overlapSample    = 5
	simulationFiles  = 8
	simulationCommit = 3
	messageWidth     = 60
)

// Preflight prints the reference check and divergence counts
func Preflight(w io.Writer, st *models.BranchStatus) {
	fmt.Fprintln(w, ui.SectionHeader("BRANCHES", ui.ColorBlue))
	fmt.Fprintln(w, ui.FlowDiagram(st.Source, st.Base))
	fmt.Fprintf(w, "  • Source %s: %d commits ahead of %s\n", ui.Bold(st.Source, ui.ColorGreen), st.Ahead, st.Base)
	fmt.Fprintf(w, "  • Base %s: %d commits ahead of %s\n", ui.Bold(st.Base, ui.ColorRed), st.Behind, st.Source)
	if mb := st.ShortMergeBase(); mb != "" {
		fmt.Fprintf(w, "  • Merge base: %s\n", mb)
	} else {
		fmt.Fprintln(w, ui.Text("  • No common ancestor", ui.ColorYellow))
	}
	fmt.Fprintln(w)
}

// Analysis prints how files were classified and which docs were co-located
func Analysis(w io.Writer, commits, files int, res classify.Result, moves []grouping.Move) {
	fmt.Fprintln(w, ui.SectionHeader("ANALYSIS", ui.ColorCyan))
	fmt.Fprintf(w, "  • Found %d commits\n", commits)
	fmt.Fprintf(w, "  • Found %d changed files\n", files)
	counts := res.CountByTier()
	for _, tier := range []classify.Tier{classify.TierCommitTicket, classify.TierPathPattern, classify.TierMessagePattern, classify.TierUnresolved} {
		if n := counts[tier]; n > 0 {
			fmt.Fprintf(w, "    %s %d\n", ui.Dim(fmt.Sprintf("%-16s", tier.String()+":")), n)
		}
	}
	byTarget := make(map[string]int)
	for _, m := range moves {
		byTarget[m.To]++
	}
	targets := make([]string, 0, len(byTarget))
	for t := range byTarget {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	for _, t := range targets {
		fmt.Fprintf(w, "  • Co-located %d doc files with %s\n", byTarget[t], t)
	}
	fmt.Fprintln(w)
}

// Validation prints per-group counts and every defect the validator found
func Validation(w io.Writer, rep validate.Report, groups []*models.Group) {
	fmt.Fprintln(w, ui.SectionHeader("VALIDATION", ui.ColorBlue))
	for _, g := range groups {
		fmt.Fprintf(w, "  %s: %d files, %d commits (Priority: %s)\n",
			ui.Bold(g.Ticket, ui.ColorGreen), g.Files.Len(), g.CommitCount(), g.Priority)
		if g.NeedsNewTicket {
			fmt.Fprintln(w, ui.Text("     NEW TICKET NEEDED", ui.ColorYellow))
		}
	}

	if len(rep.Overlaps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Bold(fmt.Sprintf("  OVERLAPPING FILES (%d):", len(rep.Overlaps)), ui.ColorRed))
		for _, o := range head(rep.Overlaps, overlapSample) {
			fmt.Fprintf(w, "    %s claimed by %s\n", o.File, strings.Join(o.Tickets, ", "))
		}
		more(w, len(rep.Overlaps), overlapSample)
	}
	if len(rep.Omitted) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Bold(fmt.Sprintf("  UNMATCHED FILES (%d):", len(rep.Omitted)), ui.ColorRed))
		for _, f := range head(rep.Omitted, unmatchedSample) {
			fmt.Fprintf(w, "    %s\n", f)
		}
		more(w, len(rep.Omitted), unmatchedSample)
	}
	if len(rep.Extraneous) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Bold(fmt.Sprintf("  FILES OUTSIDE THE CHANGE SET (%d):", len(rep.Extraneous)), ui.ColorRed))
		for _, f := range head(rep.Extraneous, unmatchedSample) {
			fmt.Fprintf(w, "    %s\n", f)
		}
		more(w, len(rep.Extraneous), unmatchedSample)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Bold("  Validation Summary:", ui.ColorCyan))
	fmt.Fprintf(w, "  • Total files: %d\n", rep.TotalFiles)
	fmt.Fprintf(w, "  • Grouped files: %d\n", rep.GroupedFiles)
	fmt.Fprintf(w, "  • Tickets: %d\n", rep.GroupCount)
	fmt.Fprintf(w, "  • New tickets needed: %d\n", rep.NewTickets)
	fmt.Fprintf(w, "  • Validation errors: %d\n", rep.DefectCount())
	if rep.Passed() {
		fmt.Fprintln(w, ui.Bold("  ✓ Ticket groupings are valid", ui.ColorGreen))
	} else {
		fmt.Fprintln(w, ui.Bold("  ✗ Groupings have issues that need attention", ui.ColorRed))
	}
	fmt.Fprintln(w)
}

// Summary prints existing and new tickets by priority with totals
func Summary(w io.Writer, groups []*models.Group) {
	var existing, fresh []*models.Group
	for _, g := range sequence.ByPriority(groups) {
		if g.NeedsNewTicket {
			fresh = append(fresh, g)
		} else {
			existing = append(existing, g)
		}
	}

	fmt.Fprintln(w, ui.SectionHeader("TICKET SUMMARY", ui.ColorBlue))
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Bold(fmt.Sprintf("  EXISTING TICKETS (%d)", len(existing)), ui.ColorGreen))
	for _, g := range existing {
		fmt.Fprintln(w, ui.GroupRow(g))
		fmt.Fprintf(w, "    %s\n", g.Title)
	}
	if len(fresh) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Bold(fmt.Sprintf("  NEW TICKETS NEEDED (%d)", len(fresh)), ui.ColorPurple))
		for _, g := range fresh {
			fmt.Fprintln(w, ui.GroupRow(g))
			fmt.Fprintf(w, "    %s\n", g.Title)
		}
	}

	totalFiles, totalCommits := 0, 0
	for _, g := range groups {
		totalFiles += g.Files.Len()
		totalCommits += g.CommitCount()
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.Bold("  TOTALS:", ui.ColorCyan))
	fmt.Fprintf(w, "  • Tickets: %d\n", len(groups))
	fmt.Fprintf(w, "  • Existing tickets: %d\n", len(existing))
	fmt.Fprintf(w, "  • New tickets needed: %d\n", len(fresh))
	fmt.Fprintf(w, "  • Total files: %d\n", totalFiles)
	fmt.Fprintf(w, "  • Total commits: %d\n", totalCommits)
	if len(groups) > 0 {
		fmt.Fprintf(w, "  • Average files per ticket: %.1f\n", float64(totalFiles)/float64(len(groups)))
	}
	fmt.Fprintln(w)
}

// BodyRenderer produces the PR body preview for a group
type BodyRenderer func(g *models.Group) (string, error)

// Simulation prints every PR execute mode would open, in emission order.
// body may be nil to skip PR body previews.
func Simulation(w io.Writer, batches []sequence.Batch, body BodyRenderer) {
	fmt.Fprintln(w, ui.SectionHeader("SIMULATION", ui.ColorPurple))
	n := 0
	for _, b := range batches {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Bold(fmt.Sprintf("Phase %d: %s", b.Index, b.Name), ui.ColorPurple))
		for _, g := range b.Groups {
			n++
			status := "EXISTING"
			if g.NeedsNewTicket {
				status = "NEW TICKET"
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s %s\n",
				ui.Bold(fmt.Sprintf("PR %d: %s", n, g.Ticket), ui.ColorCyan),
				ui.Text("("+status+")", ui.TicketStatusColor(g.NeedsNewTicket)))
			fmt.Fprintf(w, "Title: %s\n", g.Title)
			fmt.Fprintf(w, "Priority: %s\n", ui.Text(g.Priority.String(), ui.PriorityColor(g.Priority)))
			fmt.Fprintf(w, "Files: %d | Commits: %d\n", g.Files.Len(), g.CommitCount())
			if g.Files.Len() == 0 {
				fmt.Fprintln(w, ui.Text("  (no files, would be skipped)", ui.ColorYellow))
			}

			files := g.Files.Sorted()
			for _, f := range head(files, simulationFiles) {
				fmt.Fprintf(w, "  • %s\n", f)
			}
			if len(files) > simulationFiles {
				fmt.Fprintf(w, "  ... and %d more files\n", len(files)-simulationFiles)
			}

			if len(g.Commits) > 0 {
				fmt.Fprintln(w, ui.Text("Recent commits:", ui.ColorPurple))
				for _, c := range tail(g.Commits, simulationCommit) {
					fmt.Fprintf(w, "  %s %s\n", c.ShortHash(), truncate(c.Message, messageWidth))
				}
			}

			if body != nil {
				out, err := body(g)
				if err != nil {
					fmt.Fprintln(w, ui.Text("  body: "+err.Error(), ui.ColorRed))
					continue
				}
				fmt.Fprintln(w, out)
			}
		}
	}
	fmt.Fprintln(w)
}

// Emission prints per-group outcomes and totals
func Emission(w io.Writer, results []models.EmitResult) {
	fmt.Fprintln(w, ui.SectionHeader("PR CREATION", ui.ColorBlue))
	counts := make(map[string]int)
	for _, r := range results {
		fmt.Fprintln(w, ui.ResultLine(r))
		counts[ui.StatusName(r.Status)]++
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  • Created: %d\n", counts["created"])
	fmt.Fprintf(w, "  • Updated: %d\n", counts["updated"])
	fmt.Fprintf(w, "  • Skipped: %d\n", counts["skipped"])
	fmt.Fprintf(w, "  • Failed: %d\n", counts["failed"])
	fmt.Fprintf(w, "  • Total attempted: %d\n", len(results))
	fmt.Fprintln(w)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

func more(w io.Writer, total, shown int) {
	if total > shown {
		fmt.Fprintf(w, "    ... and %d more\n", total-shown)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
