package report

import (
	"github.com/charmbracelet/glamour"

	"github.com/wahlandcase/attuned.prsplit/internal/github"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// MarkdownBodies returns a BodyRenderer for PR bodies. With plain set the raw
// markdown is returned; otherwise it is rendered for the terminal.
func MarkdownBodies(source, base string, plain bool, width int) (BodyRenderer, error) {
	if plain {
		return func(g *models.Group) (string, error) {
			return github.RenderBody(g, source, base)
		}, nil
	}

	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return func(g *models.Group) (string, error) {
		md, err := github.RenderBody(g, source, base)
		if err != nil {
			return "", err
		}
		return renderer.Render(md)
	}, nil
}
