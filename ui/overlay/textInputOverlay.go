package overlay

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextInputOverlay represents a text input dialog (the filter prompt).
type TextInputOverlay struct {
	textInput textinput.Model
	Title     string
	Submitted bool
	Canceled  bool
	width     int

	// OnChange is called with the current value after every edit, if set.
	// The filter uses it to narrow the board live while typing.
	OnChange func(value string)
}

// NewTextInputOverlay creates a new text input overlay with the given title
// and initial value.
func NewTextInputOverlay(title string, value string) *TextInputOverlay {
	ti := textinput.New()
	ti.SetValue(value)
	ti.Focus()
	ti.Width = 40

	return &TextInputOverlay{
		textInput: ti,
		Title:     title,
		width:     50,
	}
}

func (t *TextInputOverlay) SetWidth(width int) {
	t.width = width
	t.textInput.Width = width - 10
}

// HandleKeyPress processes a key press and updates the state accordingly.
// Returns true if the overlay should be closed.
func (t *TextInputOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		t.Submitted = true
		return true
	case tea.KeyEsc:
		t.Canceled = true
		return true
	default:
		var cmd tea.Cmd
		t.textInput, cmd = t.textInput.Update(msg)
		_ = cmd
		if t.OnChange != nil {
			t.OnChange(t.textInput.Value())
		}
		return false
	}
}

// Value returns the current value of the text input.
func (t *TextInputOverlay) Value() string {
	return t.textInput.Value()
}

// Render renders the text input overlay
func (t *TextInputOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		MarginTop(1)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(t.width)

	content := titleStyle.Render(t.Title) + "\n" +
		t.textInput.View() + "\n" +
		hintStyle.Render("[Enter] Apply  [Esc] Cancel")

	return borderStyle.Render(content)
}
