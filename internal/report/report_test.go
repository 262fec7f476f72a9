package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prsplit/internal/classify"
	"github.com/wahlandcase/attuned.prsplit/internal/grouping"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/sequence"
	"github.com/wahlandcase/attuned.prsplit/internal/validate"
)

func grp(ticket string, p models.Priority, newTicket bool, files ...string) *models.Group {
	return &models.Group{
		Ticket:         ticket,
		Title:          ticket + ": title",
		Priority:       p,
		Files:          models.NewFileSet(files...),
		NeedsNewTicket: newTicket,
	}
}

func TestPreflight(t *testing.T) {
	var buf bytes.Buffer
	Preflight(&buf, &models.BranchStatus{Source: "unomi-3-dev", Base: "master", Ahead: 12, Behind: 3, MergeBase: "0123456789abcdef"})
	out := buf.String()
	assert.Contains(t, out, "12 commits ahead of master")
	assert.Contains(t, out, "3 commits ahead of unomi-3-dev")
	assert.Contains(t, out, "Merge base: 01234567")
}

func TestAnalysis(t *testing.T) {
	var buf bytes.Buffer
	res := classify.Result{
		Assignments: []classify.Assignment{{Path: "a", Ticket: "X", Tier: classify.TierPathPattern}},
		Unresolved:  []string{"b"},
	}
	Analysis(&buf, 4, 2, res, []grouping.Move{{File: "manual/x.adoc", From: "D", To: "X"}})
	out := buf.String()
	assert.Contains(t, out, "Found 4 commits")
	assert.Contains(t, out, "path-pattern:")
	assert.Contains(t, out, "Co-located 1 doc files with X")
}

func TestValidationReportsDefects(t *testing.T) {
	groups := []*models.Group{
		grp("A-1", models.PriorityHigh, false, "pom.xml"),
		grp("B-1", models.PriorityLow, true, "pom.xml"),
	}
	var changed []string
	for i := 0; i < 7; i++ {
		changed = append(changed, fmt.Sprintf("lost%d.txt", i))
	}
	changed = append(changed, "pom.xml")
	rep := validate.Validate(groups, changed)

	var buf bytes.Buffer
	Validation(&buf, rep, groups)
	out := buf.String()

	assert.Contains(t, out, "pom.xml claimed by A-1, B-1")
	assert.Contains(t, out, "UNMATCHED FILES (7):")
	assert.Contains(t, out, "lost4.txt")
	assert.NotContains(t, out, "lost5.txt")
	assert.Contains(t, out, "... and 2 more")
	assert.Contains(t, out, "NEW TICKET NEEDED")
	assert.Contains(t, out, "Validation errors: 8")
	assert.Contains(t, out, "Groupings have issues")
	assert.NotContains(t, out, "$")
}

func TestValidationPassed(t *testing.T) {
	groups := []*models.Group{grp("A-1", models.PriorityHigh, false, "a")}
	var buf bytes.Buffer
	Validation(&buf, validate.Validate(groups, []string{"a"}), groups)
	assert.Contains(t, buf.String(), "Ticket groupings are valid")
}

func TestSummary(t *testing.T) {
	groups := []*models.Group{
		grp("Z-1", models.PriorityLow, false, "a", "b"),
		grp("A-1", models.PriorityCritical, false, "c"),
		grp("N-1", models.PriorityHigh, true, "d", "e", "f"),
	}
	var buf bytes.Buffer
	Summary(&buf, groups)
	out := buf.String()

	assert.Contains(t, out, "EXISTING TICKETS (2)")
	assert.Contains(t, out, "NEW TICKETS NEEDED (1)")
	assert.Less(t, strings.Index(out, "A-1"), strings.Index(out, "Z-1"), "existing tickets are listed by priority")
	assert.Contains(t, out, "Total files: 6")
	assert.Contains(t, out, "Average files per ticket: 2.0")
}

func TestSimulation(t *testing.T) {
	big := grp("A-1", models.PriorityCritical, false)
	for i := 0; i < 10; i++ {
		big.Files.Add(fmt.Sprintf("f%02d", i))
	}
	for i := 0; i < 5; i++ {
		big.Commits = append(big.Commits, models.CommitInfo{Hash: fmt.Sprintf("%040d", i), Message: fmt.Sprintf("commit %d", i)})
	}
	empty := grp("B-1", models.PriorityLow, true)

	batches := []sequence.Batch{
		{Index: 1, Name: "Core", Groups: []*models.Group{big}},
		{Index: 3, Name: sequence.UnphasedName, Groups: []*models.Group{empty}},
	}
	var buf bytes.Buffer
	Simulation(&buf, batches, func(g *models.Group) (string, error) { return "BODY " + g.Ticket, nil })
	out := buf.String()

	assert.Contains(t, out, "Phase 1: Core")
	assert.Contains(t, out, "Phase 3: Unphased")
	assert.Contains(t, out, "PR 1: A-1")
	assert.Contains(t, out, "PR 2: B-1")
	assert.Contains(t, out, "f07")
	assert.NotContains(t, out, "f08")
	assert.Contains(t, out, "... and 2 more files")
	assert.NotContains(t, out, "commit 1\n")
	assert.Contains(t, out, "commit 4")
	assert.Contains(t, out, "BODY A-1")
	assert.Contains(t, out, "would be skipped")
}

func TestMarkdownBodiesPlain(t *testing.T) {
	render, err := MarkdownBodies("dev", "main", true, 0)
	require.NoError(t, err)
	out, err := render(grp("A-1", models.PriorityHigh, false, "api/x.java"))
	require.NoError(t, err)
	assert.Contains(t, out, "## A-1: title")
}

func TestEmission(t *testing.T) {
	url := "https://example.com/pull/1"
	var buf bytes.Buffer
	Emission(&buf, []models.EmitResult{
		{Ticket: "A-1", Status: models.Created, PrURL: &url},
		{Ticket: "B-1", Status: models.Failed("boom")},
		{Ticket: "C-1", Status: models.Skipped("no files")},
	})
	out := buf.String()
	assert.Contains(t, out, "Created: 1")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "Total attempted: 3")
	assert.Contains(t, out, url)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
