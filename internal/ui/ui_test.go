package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

func TestPriorityColor(t *testing.T) {
	assert.Equal(t, ColorRed, PriorityColor(models.PriorityCritical))
	assert.Equal(t, ColorCyan, PriorityColor(models.PriorityLow))
	assert.Equal(t, ColorWhite, PriorityColor(models.Priority(42)))
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "created", StatusName(models.Created))
	assert.Equal(t, "updated", StatusName(models.Updated))
	assert.Equal(t, "skipped", StatusName(models.Skipped("x")))
	assert.Equal(t, "failed", StatusName(models.Failed("x")))
	assert.Equal(t, "pending", StatusName(nil))
}

func TestResultLine(t *testing.T) {
	url := "https://github.com/o/r/pull/3"
	line := ResultLine(models.EmitResult{Ticket: "UNOMI-139", Status: models.Created, PrURL: &url})
	assert.Contains(t, line, "UNOMI-139")
	assert.Contains(t, line, "created")
	assert.Contains(t, line, url)

	failed := ResultLine(models.EmitResult{Ticket: "UNOMI-880", Status: models.Failed("push rejected")})
	assert.Contains(t, failed, "(push rejected)")
}

func TestGroupRow(t *testing.T) {
	g := &models.Group{Ticket: "UNOMI-892", Priority: models.PriorityLow, Files: models.NewFileSet("pom.xml")}
	row := GroupRow(g)
	assert.Contains(t, row, "UNOMI-892")
	assert.Contains(t, row, "  1 files")
	assert.Contains(t, row, "LOW")
}

func TestFlowDiagramFitsLongNames(t *testing.T) {
	d := FlowDiagram("unomi-3-dev", "master")
	lines := strings.Split(d, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "unomi-3-dev")
	assert.Contains(t, lines[1], "master")
	assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
}

func TestProgressBar(t *testing.T) {
	assert.Empty(t, ProgressBar(0, 0, 10))
	assert.Contains(t, ProgressBar(1, 2, 10), "50%")
}

func TestColumnBoxHeight(t *testing.T) {
	box := ColumnBox("a\nb\nc\nd", "T", ColorCyan, 20, 3)
	// 3 content lines plus top and bottom border
	assert.Len(t, strings.Split(box, "\n"), 5)
}

func TestRenderBanner(t *testing.T) {
	assert.Len(t, RenderBannerLines(""), len(Banner))
	assert.Contains(t, RenderBanner("SIMULATION"), "⚠ SIMULATION")
}
