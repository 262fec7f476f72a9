package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-lipgloss.Width(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// FlowDiagram shows the source reference feeding the base reference
// Example: unomi-3-dev ====> master
func FlowDiagram(source, base string) string {
	width := max(lipgloss.Width(source), lipgloss.Width(base), 7)

	srcStyle := lipgloss.NewStyle().Foreground(ColorGreen)
	srcBold := srcStyle.Bold(true)
	baseStyle := lipgloss.NewStyle().Foreground(ColorRed)
	baseBold := baseStyle.Bold(true)
	arrowStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	edge := strings.Repeat("─", width+2)
	gap := strings.Repeat(" ", 9)

	line1 := srcStyle.Render("  ┌"+edge+"┐") + gap + baseStyle.Render("┌"+edge+"┐")
	line2 := srcStyle.Render("  │ ") + srcBold.Render(centerText(source, width)) + srcStyle.Render(" │") +
		arrowStyle.Render("  ====>  ") +
		baseStyle.Render("│ ") + baseBold.Render(centerText(base, width)) + baseStyle.Render(" │")
	line3 := srcStyle.Render("  └"+edge+"┘") + gap + baseStyle.Render("└"+edge+"┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// centerText centers a string within a given width
func centerText(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	leftPad := (width - n) / 2
	rightPad := width - n - leftPad
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	yesColor, noColor := ColorDarkGray, ColorDarkGray
	yesText, noText := ColorWhite, ColorWhite
	iconYes, iconNo := " ", " "
	if selection == 0 {
		yesColor, yesText, iconYes = ColorGreen, ColorGreen, ">"
	}
	if selection == 1 {
		noColor, noText, iconNo = ColorRed, ColorRed, ">"
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesColor)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesText).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(noColor)
	noTextStyle := lipgloss.NewStyle().Foreground(noText).Bold(true)

	line1 := yesStyle.Render("  ┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("  │"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", yesStyle.Render(iconYes))),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", noStyle.Render(iconNo))),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("  └────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// ProgressBar creates a progress bar
func ProgressBar(current, total int, width int) string {
	if total == 0 {
		return ""
	}

	progress := float64(current) / float64(total)
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	barStyle := lipgloss.NewStyle().Foreground(ColorGreen)
	percentStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		barStyle.Render(fmt.Sprintf("[%s]", bar)),
		percentStyle.Render(fmt.Sprintf("%d%%", percentage)),
	)
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// StatusName returns the lower-case label for an emission status
func StatusName(s models.EmitStatus) string {
	switch {
	case models.IsStatusCreated(s):
		return "created"
	case models.IsStatusUpdated(s):
		return "updated"
	case models.IsStatusSkipped(s):
		return "skipped"
	case models.IsStatusFailed(s):
		return "failed"
	default:
		return "pending"
	}
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "created", "success":
		return "✓", ColorGreen
	case "updated":
		return "↻", ColorBlue
	case "skipped":
		return "⊘", ColorYellow
	case "failed", "error":
		return "✗", ColorRed
	case "loading":
		return "⏳", ColorYellow
	default:
		return "·", ColorWhite
	}
}

// ResultLine renders one emission result with its icon
func ResultLine(r models.EmitResult) string {
	name := StatusName(r.Status)
	icon, color := StatusIcon(name)
	line := fmt.Sprintf("  %s %s %s",
		Text(icon, color),
		Bold(fmt.Sprintf("%-12s", r.Ticket), color),
		Text(name, color),
	)
	if reason := models.GetStatusReason(r.Status); reason != "" {
		line += Dim(" (" + reason + ")")
	}
	if r.PrURL != nil {
		line += "\n      " + Text(*r.PrURL, ColorCyan)
	}
	return line
}

// GroupRow renders a one-line group overview: ticket, counts and priority
func GroupRow(g *models.Group) string {
	color := PriorityColor(g.Priority)
	return fmt.Sprintf("  %s | %3d files | %2d commits | %s",
		Bold(fmt.Sprintf("%-12s", g.Ticket), color),
		g.Files.Len(),
		g.CommitCount(),
		Text(g.Priority.String(), color),
	)
}

// ColumnBox creates a bordered column with title
// If height > 0, content is padded/truncated to exactly that many lines
func ColumnBox(content string, title string, color lipgloss.Color, width int, height int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)
	if width > 0 {
		style = style.Width(width)
	}

	fullContent := content
	if title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
		fullContent = titleStyle.Render(" "+title+" ") + "\n" + content
	}

	if height > 0 {
		lines := strings.Split(fullContent, "\n")
		for len(lines) < height {
			lines = append(lines, "")
		}
		fullContent = strings.Join(lines[:height], "\n")
	}

	return style.Render(fullContent)
}
