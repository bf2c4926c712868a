package console

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders model responses for the terminal. Rendering
// failures fall back to the raw text.
type MarkdownRenderer struct {
	r *glamour.TermRenderer
}

// NewMarkdownRenderer builds a renderer wrapping at width columns.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{r: r}, nil
}

// Render returns the styled form of text.
func (m *MarkdownRenderer) Render(text string) string {
	if m == nil || m.r == nil {
		return text
	}
	out, err := m.r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
