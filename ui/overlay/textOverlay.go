package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay represents a text screen overlay (help screens and the like).
// Any key press dismisses it.
type TextOverlay struct {
	// Dismissed indicates whether the overlay has been dismissed
	Dismissed bool
	// OnDismiss is called when the overlay is dismissed, if set
	OnDismiss func()

	width   int
	content string
}

// NewTextOverlay creates a new text overlay with the given content
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{
		content: content,
	}
}

// HandleKeyPress processes a key press. Returns true if the overlay should be closed.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// SetWidth sets the width of the overlay
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// Render renders the text overlay
func (t *TextOverlay) Render(opts ...WhitespaceOption) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)
	if t.width > 0 {
		style = style.Width(t.width)
	}
	return style.Render(t.content)
}
