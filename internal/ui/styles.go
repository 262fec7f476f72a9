package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8
)

// PriorityColor maps a priority tier to its display color
func PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityCritical:
		return ColorRed
	case models.PriorityHigh:
		return ColorOrange
	case models.PriorityMedium:
		return ColorYellow
	case models.PriorityLow:
		return ColorCyan
	default:
		return ColorWhite
	}
}

// TicketStatusColor colors the new/existing ticket label
func TicketStatusColor(needsNewTicket bool) lipgloss.Color {
	if needsNewTicket {
		return ColorPurple
	}
	return ColorGreen
}

// Text renders s in the given color
func Text(s string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

// Bold renders s bold in the given color
func Bold(s string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(s)
}

// Dim renders s in dark gray
func Dim(s string) string {
	return Text(s, ColorDarkGray)
}
