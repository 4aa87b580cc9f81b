package app

import (
	"strings"

	"gridboard/log"
	"gridboard/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// helpType identifies a help screen. Onboarding screens are shown once and
// recorded in the app state; the general help screen shows every time.
type helpType int

const (
	helpTypeGeneral helpType = iota
	helpTypeOnboarding
)

func (ht helpType) mask() uint32 {
	return 1 << uint32(ht)
}

var helpTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#7D56F4"))

var helpKeyColStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#AAAAAA")).
	Width(10)

var helpDescColStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888888"))

func helpRow(key, desc string) string {
	return helpKeyColStyle.Render(key) + helpDescColStyle.Render(desc)
}

func (ht helpType) content() string {
	switch ht {
	case helpTypeOnboarding:
		return strings.Join([]string{
			helpTitleStyle.Render("Welcome to Gridboard"),
			"",
			helpDescColStyle.Render("Your deck file is packed into a responsive grid."),
			helpDescColStyle.Render("Resize the terminal and the board reflows; edit the"),
			helpDescColStyle.Render("deck file and the board reloads."),
			"",
			helpRow("?", "full key reference"),
			helpRow("q", "quit"),
			"",
			helpDescColStyle.Render("Press any key to continue."),
		}, "\n")
	default:
		return strings.Join([]string{
			helpTitleStyle.Render("Keys"),
			"",
			helpRow("↑↓←→/hjkl", "move between cards"),
			helpRow("d", "dismiss the selected card"),
			helpRow("p", "pin/unpin the selected card"),
			helpRow("u", "restore all dismissed cards"),
			"",
			helpRow("/", "filter cards by title or tag"),
			helpRow("esc", "clear the filter"),
			helpRow("y", "copy the layout as CSS grid-area rules"),
			helpRow("b", "preview the board at another breakpoint"),
			helpRow("r", "reload the deck file"),
			"",
			helpRow("?", "this screen"),
			helpRow("q", "quit"),
		}, "\n")
	}
}

// showHelpScreen displays the help screen for the given type. Onboarding
// screens that were already seen call onDismiss immediately instead.
func (m *home) showHelpScreen(ht helpType, onDismiss func()) (tea.Model, tea.Cmd) {
	if ht != helpTypeGeneral {
		seen := m.appState.GetHelpScreensSeen()
		if seen&ht.mask() != 0 {
			if onDismiss != nil {
				onDismiss()
			}
			return m, nil
		}
		if err := m.appState.SetHelpScreensSeen(seen | ht.mask()); err != nil {
			log.WarningLog.Printf("failed to save help screen state: %v", err)
		}
	}

	m.textOverlay = overlay.NewTextOverlay(ht.content())
	m.textOverlay.OnDismiss = onDismiss
	width := 60
	if m.width > 0 {
		width = min(60, m.width-4)
	}
	m.textOverlay.SetWidth(width)
	m.state = stateHelp
	return m, nil
}

func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textOverlay == nil {
		m.state = stateDefault
		return m, nil
	}
	if m.textOverlay.HandleKeyPress(msg) {
		m.textOverlay = nil
		m.state = stateDefault
		m.menu.SetState(m.menuState())
	}
	return m, nil
}
