package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenConfirmation Screen = iota
	ScreenProcessing
	ScreenSummary
)

func (s Screen) String() string {
	names := []string{
		"Confirmation",
		"Processing",
		"Summary",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
