package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/ui"
)

// contentWidth returns the usable content width, adapting to terminal size
func (m Model) contentWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	bannerLines := len(ui.Banner)
	if m.notice != "" {
		bannerLines += 2
	}
	statusHeight := 3 // status bar with border

	// Available height for content = total - banner - gaps - status
	availableHeight := m.height - bannerLines - 3 - statusHeight
	if availableHeight < 10 {
		availableHeight = 10
	}

	var sections []string
	sections = append(sections, ui.RenderBanner(m.notice))
	sections = append(sections, "")

	if m.screen == ScreenSummary {
		sections = append(sections, m.renderSummaryWithHeight(availableHeight))
	} else {
		outerBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorPurple).
			Width(m.contentWidth()).
			Padding(1, 2)

		var content string
		if m.screen == ScreenConfirmation {
			content = m.renderConfirmationWithHeight(availableHeight)
		} else {
			content = m.renderProcessing()
		}
		sections = append(sections, outerBox.Render(content))
	}

	sections = append(sections, "")
	sections = append(sections, m.renderStatusBar())

	content := strings.Join(sections, "\n")

	// Center horizontally in the terminal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) renderConfirmationWithHeight(availableHeight int) string {
	var lines []string
	lines = append(lines, ui.FlowDiagram(m.source, m.base))
	lines = append(lines, "")

	totalFiles, fresh := 0, 0
	for _, g := range m.groups {
		totalFiles += g.Files.Len()
		if g.NeedsNewTicket {
			fresh++
		}
	}
	countStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)
	lines = append(lines, fmt.Sprintf("  📊 %s PRs covering %s files",
		countStyle.Render(fmt.Sprintf("%d", len(m.groups))),
		countStyle.Render(fmt.Sprintf("%d", totalFiles))))
	if fresh > 0 {
		warningStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, warningStyle.Render(fmt.Sprintf("  ⚠ %d groups need a new ticket", fresh)))
	}
	lines = append(lines, "")

	// Group list, scrollable
	var groupLines []string
	for _, b := range m.batches {
		groupLines = append(groupLines, ui.SectionHeader(fmt.Sprintf("Phase %d: %s", b.Index, b.Name), ui.ColorMagenta))
		for _, g := range b.Groups {
			groupLines = append(groupLines, ui.GroupRow(g))
		}
		groupLines = append(groupLines, "")
	}
	visible := availableHeight - len(lines) - 8
	if visible < 5 {
		visible = 5
	}
	start := m.confirmScroll
	if start > len(groupLines) {
		start = len(groupLines)
	}
	end := start + visible
	if end > len(groupLines) {
		end = len(groupLines)
	}
	lines = append(lines, groupLines[start:end]...)
	if end < len(groupLines) {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  ↓ %d more lines", len(groupLines)-end)))
	}

	lines = append(lines, "")
	lines = append(lines, "  Create these PRs?")
	lines = append(lines, "")
	lines = append(lines, ui.YesNoButtons(m.confirmSelection))

	return strings.Join(lines, "\n")
}

func (m Model) renderProcessing() string {
	var lines []string

	countStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	header := fmt.Sprintf("Creating PRs %s", countStyle.Render(fmt.Sprintf("(%d/%d)", len(m.results), len(m.groups))))
	lines = append(lines, ui.SectionHeader(header, ui.ColorMagenta))
	lines = append(lines, "")
	lines = append(lines, "   "+ui.ProgressBar(len(m.results), len(m.groups), 30))
	lines = append(lines, "")

	ticketStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
	stepStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

	if m.current < len(m.groups) {
		g := m.groups[m.current]
		lines = append(lines, fmt.Sprintf("   %s Processing %s...",
			m.spinner.View(),
			ticketStyle.Render(g.Ticket),
		))
		if m.currentStep != "" {
			lines = append(lines, fmt.Sprintf("      → %s", stepStyle.Render(m.currentStep)))
		}
	}
	lines = append(lines, "")

	if len(m.results) > 0 {
		lines = append(lines, ui.SectionHeader("Completed", ui.ColorWhite))
		lines = append(lines, "")
		for _, result := range m.results {
			lines = append(lines, ui.ResultLine(result))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSummaryWithHeight(availableHeight int) string {
	var lines []string

	successCount, skipCount, failCount := 0, 0, 0
	for _, result := range m.results {
		switch {
		case models.IsStatusSuccess(result.Status):
			successCount++
		case models.IsStatusSkipped(result.Status):
			skipCount++
		case models.IsStatusFailed(result.Status):
			failCount++
		}
	}

	var headerMsg string
	var headerColor lipgloss.Color
	var icon string

	switch {
	case failCount > 0:
		headerMsg = fmt.Sprintf("%d of %d groups failed", failCount, len(m.results))
		headerColor = ui.ColorRed
		icon = "✗"
	case successCount > 0:
		headerMsg = fmt.Sprintf("%d PRs processed successfully!", successCount)
		headerColor = ui.ColorGreen
		icon = "✓"
	case skipCount > 0:
		headerMsg = fmt.Sprintf("All %d groups skipped", skipCount)
		headerColor = ui.ColorYellow
		icon = "⊘"
	default:
		headerMsg = "No groups processed"
		headerColor = ui.ColorYellow
		icon = "⊘"
	}

	// Typewriter effect for header message
	revealed := headerMsg
	if m.typewriterPos < len(headerMsg) {
		revealed = headerMsg[:m.typewriterPos]
	}

	iconColor := headerColor
	if successCount > 0 && failCount == 0 {
		pulseIntensity := (math.Sin(m.pulsePhase) + 1.0) / 2.0
		if pulseIntensity <= 0.5 {
			iconColor = ui.ColorLightGreen
		}
	}

	iconStyle := lipgloss.NewStyle().Foreground(iconColor).Bold(true)
	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true)

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s %s", iconStyle.Render(icon), headerStyle.Render(revealed)))
	lines = append(lines, "")

	for i, result := range m.results {
		name := ui.StatusName(result.Status)
		statusIcon, color := ui.StatusIcon(name)
		statusStyle := lipgloss.NewStyle().Foreground(color)
		ticketStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)

		// Highlight selected row
		prefix := "  "
		if i == m.menuIndex {
			prefix = "▶ "
			ticketStyle = ticketStyle.Bold(true)
		}

		lines = append(lines, fmt.Sprintf("   %s%s %s %s",
			prefix,
			statusStyle.Render(fmt.Sprintf("%s %-8s", statusIcon, name)),
			ticketStyle.Render(fmt.Sprintf("%-12s", result.Ticket)),
			truncateString(result.Title, 50),
		))
		if result.PrURL != nil {
			urlStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
			lines = append(lines, fmt.Sprintf("              🔗 %s", urlStyle.Render(*result.PrURL)))
		}
		if reason := models.GetStatusReason(result.Status); reason != "" {
			lines = append(lines, fmt.Sprintf("              %s", statusStyle.Render(reason)))
		}
	}

	lines = append(lines, "")
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	lines = append(lines, dimStyle.Render(fmt.Sprintf("   Total: %d success, %d skipped, %d failed",
		successCount, skipCount, failCount)))

	if successCount > 0 {
		lines = append(lines, "")
		lines = append(lines, m.renderConfetti())
	}

	return ui.ColumnBox(strings.Join(lines, "\n"), "PR Summary", headerColor, m.contentWidth()-10, availableHeight)
}

func (m Model) renderConfetti() string {
	if len(m.confetti) == 0 {
		return ""
	}

	width := 80
	height := 5
	grid := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		colors[i] = make([]lipgloss.Color, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, p := range m.confetti {
		x := int(p.X)
		y := int(p.Y) - 5 // offset for display area
		if x >= 0 && x < width && y >= 0 && y < height {
			grid[y][x] = p.Char
			colors[y][x] = p.Color
		}
	}

	var lines []string
	for y := 0; y < height; y++ {
		var line strings.Builder
		line.WriteString("   ")
		for x := 0; x < width; x++ {
			if grid[y][x] != ' ' {
				style := lipgloss.NewStyle().Foreground(colors[y][x])
				line.WriteString(style.Render(string(grid[y][x])))
			} else {
				line.WriteRune(' ')
			}
		}
		lines = append(lines, line.String())
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var hints []string

	switch m.screen {
	case ScreenConfirmation:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("↑↓", "Scroll", ui.ColorWhite),
			ui.KeyBinding("y/n", "Quick", ui.ColorGreen),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
			ui.KeyBinding("Esc", "Quit", ui.ColorRed),
		}
	case ScreenProcessing:
		hints = []string{
			ui.KeyBinding("Ctrl+C", "Cancel", ui.ColorRed),
		}
	case ScreenSummary:
		hints = []string{
			ui.KeyBinding("↑↓", "Navigate", ui.ColorWhite),
		}
		if len(m.prURLs()) > 0 {
			hints = append(hints,
				ui.KeyBinding("o", "Open PRs", ui.ColorBlue),
				ui.KeyBinding("c", "Copy URLs", ui.ColorBlue),
			)
		}
		hints = append(hints, ui.KeyBinding("q", "Quit", ui.ColorRed))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorDarkGray).
		Padding(0, 1)

	hotkeysLine := strings.Join(hints, "  ")
	if m.copyFeedback != "" {
		feedbackStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen).Bold(true)
		if strings.HasPrefix(m.copyFeedback, "✗") {
			feedbackStyle = lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true)
		}
		hotkeysLine += "  │  " + feedbackStyle.Render(m.copyFeedback)
	}

	return borderStyle.Render(hotkeysLine)
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
