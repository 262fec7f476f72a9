package app

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wahlandcase/attuned.prsplit/internal/emit"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// groupResultMsg carries the outcome of one group emission
type groupResultMsg struct {
	result models.EmitResult
}

// progressMsg is sent for real-time progress updates while a group is emitted
type progressMsg struct {
	step string
}

// listenForProgress creates a subscription that listens to the progress channel
func listenForProgress(ch chan string) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		step, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{step: step}
	}
}

// sendProgress safely sends a progress update to the channel
func sendProgress(ch chan string, step string) {
	if ch != nil {
		select {
		case ch <- step:
		default:
			// Channel full or closed, skip
		}
	}
}

// emitGroupCmd emits a single group in the background
func emitGroupCmd(ctx context.Context, e *emit.Emitter, g *models.Group, progressCh chan string) tea.Cmd {
	return func() tea.Msg {
		result := e.EmitOne(ctx, g, func(step string) {
			sendProgress(progressCh, step)
		})
		return groupResultMsg{result: result}
	}
}

// openURL opens a URL in the default browser
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default: // Linux and others
		cmd = exec.Command("xdg-open", url)
	}

	return cmd.Start()
}

// copyToClipboard copies text to the system clipboard
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// openURLs opens multiple URLs in the default browser
func openURLs(urls []string) {
	for _, url := range urls {
		_ = openURL(url)
	}
}
