package models

// Mode selects what a run does after the groups are built
type Mode int

const (
	// ModeExecute creates one PR per group in dependency order
	ModeExecute Mode = iota
	// ModeValidate checks the grouping and fails on any defect
	ModeValidate
	// ModeSummary prints a per-ticket overview
	ModeSummary
	// ModeSimulate prints what execute would do without touching git or GitHub
	ModeSimulate
)

func (m Mode) String() string {
	switch m {
	case ModeExecute:
		return "execute"
	case ModeValidate:
		return "validate"
	case ModeSummary:
		return "summary"
	case ModeSimulate:
		return "simulate"
	default:
		return "unknown"
	}
}

// TouchesRemote reports whether the mode writes to git or GitHub
func (m Mode) TouchesRemote() bool {
	return m == ModeExecute
}
