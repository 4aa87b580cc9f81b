package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay represents a confirmation dialog with yes/no options.
type ConfirmationOverlay struct {
	// Dismissed indicates whether the overlay has been dismissed
	Dismissed bool
	// Confirmed indicates whether the user confirmed the action
	Confirmed bool
	// OnConfirm is called when the user confirms the action, if set
	OnConfirm func()
	// OnCancel is called when the user cancels the action, if set
	OnCancel func()

	message string
	width   int
}

// NewConfirmationOverlay creates a new confirmation overlay with the given message
func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{
		message: message,
		width:   50,
	}
}

// HandleKeyPress processes a key press. Returns true if the overlay should be closed.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "Y", "enter":
		c.Confirmed = true
		c.Dismissed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case "n", "N", "esc", "q":
		c.Confirmed = false
		c.Dismissed = true
		if c.OnCancel != nil {
			c.OnCancel()
		}
		return true
	default:
		return false
	}
}

// SetWidth sets the width of the overlay
func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// Render renders the confirmation overlay
func (c *ConfirmationOverlay) Render(opts ...WhitespaceOption) string {
	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF"))

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		MarginTop(1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2).
		Width(c.width)

	content := messageStyle.Render(c.message) + "\n" +
		hintStyle.Render("[y/Enter] Confirm  [n/Esc] Cancel")

	return borderStyle.Render(content)
}
