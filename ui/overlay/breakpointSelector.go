package overlay

import (
	"fmt"
	"strings"

	"gridboard/grid"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AutoBreakpoint is the selector entry which returns the board to following
// the measured terminal width.
const AutoBreakpoint = "auto"

// BreakpointOption represents a selectable breakpoint tier
type BreakpointOption struct {
	Name        string // Tier name, or AutoBreakpoint
	Description string // Description of the tier
}

// BreakpointSelectorOverlay represents a breakpoint preview selection dialog.
// Picking a tier pins the board to that tier regardless of terminal width,
// which is how a deck is checked at sizes the current terminal can't reach.
type BreakpointSelectorOverlay struct {
	Dismissed bool
	Selected  string // The selected tier name
	options   []BreakpointOption
	cursor    int
	width     int
}

// NewBreakpointSelectorOverlay creates a selector over the given breakpoint
// table. current is the tier to preselect (AutoBreakpoint when not pinned).
func NewBreakpointSelectorOverlay(table grid.BreakpointTable, current string) *BreakpointSelectorOverlay {
	options := []BreakpointOption{
		{
			Name:        AutoBreakpoint,
			Description: "Follow the terminal width.",
		},
	}
	for _, bp := range table {
		desc := fmt.Sprintf("Pin the layout at %s (min width %d).", bp.Name, bp.MinWidth)
		if bp.MinWidth == 0 {
			desc = fmt.Sprintf("Pin the layout at %s (any width).", bp.Name)
		}
		options = append(options, BreakpointOption{Name: bp.Name, Description: desc})
	}

	cursor := 0
	for i, opt := range options {
		if opt.Name == current {
			cursor = i
			break
		}
	}

	return &BreakpointSelectorOverlay{
		options: options,
		cursor:  cursor,
		width:   50,
	}
}

// HandleKeyPress processes a key press and updates the state
func (b *BreakpointSelectorOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		b.moveCursor(-1)
		return false
	case "down", "j":
		b.moveCursor(1)
		return false
	case "enter":
		b.Selected = b.options[b.cursor].Name
		b.Dismissed = true
		return true
	case "esc":
		b.Dismissed = true
		return true
	default:
		return false
	}
}

// moveCursor moves the cursor up or down, wrapping around
func (b *BreakpointSelectorOverlay) moveCursor(delta int) {
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = len(b.options) - 1
	} else if b.cursor >= len(b.options) {
		b.cursor = 0
	}
}

// Render renders the breakpoint selector overlay
func (b *BreakpointSelectorOverlay) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		PaddingLeft(4)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Preview Breakpoint"))
	content.WriteString("\n\n")

	for i, opt := range b.options {
		prefix := "  "
		nameStyle := normalStyle
		if i == b.cursor {
			prefix = "> "
			nameStyle = selectedStyle
		}

		content.WriteString(prefix)
		content.WriteString(nameStyle.Render(opt.Name))
		content.WriteString("\n")
		content.WriteString(descStyle.Render(opt.Description))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Render(
		"[Enter] Select  [Esc] Cancel  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(b.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the overlay
func (b *BreakpointSelectorOverlay) SetWidth(width int) {
	b.width = width
}

// GetSelected returns the selected tier name
func (b *BreakpointSelectorOverlay) GetSelected() string {
	return b.Selected
}
