package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner returns the ASCII art banner for the application header
var Banner = []string{
	" ____  ____  ____  ____  _     ___ _____ ",
	"|  _ \\|  _ \\/ ___||  _ \\| |   |_ _|_   _|",
	"| |_) | |_) \\___ \\| |_) | |    | |  | |  ",
	"|  __/|  _ < ___) |  __/| |___ | |  | |  ",
	"|_|   |_| \\_\\____/|_|   |_____|___| |_|  ",
}

// RenderBanner returns the styled banner as a string. A non-empty notice is
// shown underneath as a warning line.
func RenderBanner(notice string) string {
	return strings.Join(RenderBannerLines(notice), "\n")
}

// RenderBannerLines returns the banner as individual lines for more control
func RenderBannerLines(notice string) []string {
	bannerStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	var lines []string
	for _, line := range Banner {
		lines = append(lines, bannerStyle.Render(line))
	}

	if notice != "" {
		lines = append(lines, "")
		warningStyle := lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
		lines = append(lines, warningStyle.Render("⚠ "+notice))
	}

	return lines
}
