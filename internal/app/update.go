package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.updateAnimations()
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.currentStep = msg.step
		// Continue listening for more progress updates
		return m, listenForProgress(m.progressChan)

	case groupResultMsg:
		return m.handleGroupResult(msg)
	}

	return m, nil
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear copy feedback on any keypress
	m.copyFeedback = ""

	if msg.Type == tea.KeyCtrlC {
		if m.screen == ScreenProcessing {
			// The in-flight group fails on its cancelled context; the rest are
			// recorded without running.
			m.cancelled = true
			m.currentStep = "Cancelling..."
			m.cancel()
			return m, nil
		}
		m.cancel()
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenConfirmation:
		return m.handleConfirmationKey(msg)
	case ScreenSummary:
		return m.handleSummaryKey(msg)
	}

	return m, nil
}

func (m Model) handleConfirmationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "n", "esc":
		m.cancel()
		m.shouldQuit = true
		return m, tea.Quit
	case "left", "right", "tab":
		m.confirmSelection = 1 - m.confirmSelection
	case "up":
		if m.confirmScroll > 0 {
			m.confirmScroll--
		}
	case "down":
		if m.confirmScroll < m.maxConfirmScroll() {
			m.confirmScroll++
		}
	case "y":
		m.confirmSelection = 0
		return m.confirmAction()
	case "enter":
		if m.confirmSelection == 0 {
			return m.confirmAction()
		}
		m.cancel()
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) maxConfirmScroll() int {
	visibleHeight := m.height - 10
	if visibleHeight < 10 {
		visibleHeight = 10
	}
	maxScroll := m.confirmContentLines() - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	return maxScroll
}

func (m Model) confirmAction() (tea.Model, tea.Cmd) {
	m.current = 0
	m.results = nil
	m.currentStep = ""
	m.screen = ScreenProcessing
	if len(m.groups) == 0 {
		return m.finish()
	}
	// Create progress channel for real-time updates
	m.progressChan = make(chan string, 1)
	return m, tea.Batch(
		emitGroupCmd(m.ctx, m.emitter, m.groups[0], m.progressChan),
		listenForProgress(m.progressChan),
	)
}

func (m Model) handleGroupResult(msg groupResultMsg) (tea.Model, tea.Cmd) {
	m.results = append(m.results, msg.result)
	m.current++

	if m.cancelled {
		for _, g := range m.groups[m.current:] {
			m.results = append(m.results, m.emitter.EmitOne(m.ctx, g, nil))
		}
		m.current = len(m.groups)
	}

	if m.current >= len(m.groups) {
		return m.finish()
	}

	// the listener started in confirmAction keeps re-arming itself
	m.currentStep = ""
	return m, emitGroupCmd(m.ctx, m.emitter, m.groups[m.current], m.progressChan)
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.currentStep = ""
	if m.progressChan != nil {
		close(m.progressChan)
		m.progressChan = nil
	}
	m.screen = ScreenSummary
	m.menuIndex = 0
	for _, result := range m.results {
		if models.IsStatusSuccess(result.Status) {
			m.spawnConfetti()
			break
		}
	}
	return m, nil
}

func (m Model) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(m.results)-1 {
			m.menuIndex++
		}
	case "o":
		openURLs(m.prURLs())
	case "c":
		// Copy all PR URLs as markdown list
		var lines []string
		for _, result := range m.results {
			if result.PrURL != nil {
				lines = append(lines, fmt.Sprintf("- %s: %s", result.Ticket, *result.PrURL))
			}
		}
		if len(lines) > 0 {
			if err := copyToClipboard(strings.Join(lines, "\n")); err == nil {
				m.copyFeedback = "✓ Copied URLs!"
			} else {
				m.copyFeedback = "✗ Copy failed"
			}
		}
		return m, nil
	case "q", "enter", "esc":
		m.cancel()
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) prURLs() []string {
	var urls []string
	for _, result := range m.results {
		if result.PrURL != nil {
			urls = append(urls, *result.PrURL)
		}
	}
	return urls
}
