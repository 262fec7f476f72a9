// Package termfix adjusts the terminal environment before any lipgloss or
// termenv code runs and decides whether the interactive UI can be used.
// Import this package FIRST using:
//
//	_ "github.com/wahlandcase/attuned.prsplit/internal/termfix"
package termfix

import (
	"os"

	"golang.org/x/term"
)

// warpAdjusted records that init rewrote TERM for Warp
var warpAdjusted bool

func init() {
	if os.Getenv("TERM_PROGRAM") == "WarpTerminal" {
		os.Setenv("TERM", "dumb")
		os.Setenv("COLORTERM", "truecolor")
		warpAdjusted = true
	}
}

// Interactive reports whether in and out are both terminals that can host the
// full-screen UI. CI runners and a genuine dumb terminal fall back to plain
// output.
func Interactive(in, out *os.File) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" && !warpAdjusted {
		return false
	}
	return term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd()))
}

// Width returns the terminal width of f, or fallback when unknown
func Width(f *os.File, fallback int) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
