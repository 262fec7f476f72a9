// Package app is the interactive execute screen: confirm the ordered groups,
// emit them one by one with live progress, then summarize the results.
package app

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wahlandcase/attuned.prsplit/internal/emit"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/sequence"
	"github.com/wahlandcase/attuned.prsplit/internal/ui"
)

// ConfettiParticle represents a single confetti particle
type ConfettiParticle struct {
	X, Y   float64
	VX, VY float64
	Char   rune
	Color  lipgloss.Color
}

// Options configure the execute screen
type Options struct {
	Emitter *emit.Emitter
	Batches []sequence.Batch
	Source  string
	Base    string
	// Notice is shown under the banner, e.g. a draft or defect warning
	Notice string
}

// Model is the main application state
type Model struct {
	emitter *emit.Emitter
	batches []sequence.Batch
	groups  []*models.Group
	source  string
	base    string
	notice  string

	ctx    context.Context
	cancel context.CancelFunc

	// Navigation
	screen     Screen
	menuIndex  int
	shouldQuit bool

	// Processing state
	current      int
	currentStep  string
	progressChan chan string
	results      []models.EmitResult
	cancelled    bool

	// UI state
	confirmSelection int // 0=Yes, 1=No
	confirmScroll    int
	spinner          spinner.Model
	copyFeedback     string

	// Animation state
	confetti      []ConfettiParticle
	pulsePhase    float64 // 0.0 - 2*PI for sine wave
	typewriterPos int     // Characters revealed so far

	// Window size
	width  int
	height int
}

// New creates a new application model. ctx bounds every emission; Ctrl+C
// during processing cancels it.
func New(ctx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.ColorCyan)

	var groups []*models.Group
	for _, b := range opts.Batches {
		groups = append(groups, b.Groups...)
	}

	return Model{
		emitter: opts.Emitter,
		batches: opts.Batches,
		groups:  groups,
		source:  opts.Source,
		base:    opts.Base,
		notice:  opts.Notice,
		ctx:     ctx,
		cancel:  cancel,
		screen:  ScreenConfirmation,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		m.spinner.Tick,
	)
}

// Results returns the emission results in order. Empty if the run was not
// confirmed.
func (m Model) Results() []models.EmitResult {
	return m.results
}

// Confirmed reports whether the user started emission
func (m Model) Confirmed() bool {
	return m.screen != ScreenConfirmation
}

// tickMsg is sent on each tick for animations
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}

// spawnConfetti creates confetti particles for celebration
func (m *Model) spawnConfetti() {
	colors := []lipgloss.Color{
		ui.ColorCyan,
		ui.ColorMagenta,
		ui.ColorYellow,
		ui.ColorGreen,
		ui.ColorRed,
		ui.ColorWhite,
	}
	chars := []rune{'*', '•', '✦', '✧', '◆', '◇', '▪', '♦', '★', '☆'}

	m.confetti = nil
	for i := 0; i < 40; i++ {
		angle := (float64(i) / 40.0) * math.Pi * 2.0
		speed := 2.0 + float64(i%5)*0.5
		m.confetti = append(m.confetti, ConfettiParticle{
			X:     40.0,
			Y:     5.0,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - 2.0, // bias upward initially
			Char:  chars[rand.Intn(len(chars))],
			Color: colors[rand.Intn(len(colors))],
		})
	}
	m.typewriterPos = 0
}

// confirmContentLines is the line count of the confirmation group list
func (m *Model) confirmContentLines() int {
	lines := 0
	for _, b := range m.batches {
		lines += 2 + len(b.Groups) // header, rows, blank
	}
	return lines
}

// updateAnimations updates all animation state
func (m *Model) updateAnimations() {
	m.pulsePhase = math.Mod(m.pulsePhase+0.08, 2.0*math.Pi)

	for i := range m.confetti {
		m.confetti[i].X += m.confetti[i].VX
		m.confetti[i].Y += m.confetti[i].VY
		m.confetti[i].VY += 0.15 // gravity
		m.confetti[i].VX *= 0.98 // air resistance
	}

	filtered := m.confetti[:0]
	for _, p := range m.confetti {
		if p.Y < 50.0 {
			filtered = append(filtered, p)
		}
	}
	m.confetti = filtered

	if m.screen == ScreenSummary && m.typewriterPos < 100 {
		m.typewriterPos++
	}
}
