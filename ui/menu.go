package ui

import (
	"strings"

	"gridboard/keys"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205"))

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	StateEmpty
	StateFilter
	StateConfirm
	StateBreakpoint
)

type Menu struct {
	options       []keys.KeyName
	height, width int
	state         MenuState

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var defaultMenuOptions = []keys.KeyName{
	keys.KeyDismiss, keys.KeyPin, keys.KeyRestore,
	keys.KeyFilter, keys.KeyCopy, keys.KeyBreakpoint, keys.KeyReload,
	keys.KeyHelp, keys.KeyQuit,
}
var emptyMenuOptions = []keys.KeyName{keys.KeyRestore, keys.KeyReload, keys.KeyHelp, keys.KeyQuit}
var filterMenuOptions = []keys.KeyName{keys.KeyEnter, keys.KeyEsc}
var confirmMenuOptions = []keys.KeyName{keys.KeyEnter, keys.KeyEsc}
var breakpointMenuOptions = []keys.KeyName{keys.KeyEnter, keys.KeyEsc}

func NewMenu() *Menu {
	return &Menu{
		options: defaultMenuOptions,
		state:   StateDefault,
		keyDown: -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	switch m.state {
	case StateEmpty:
		m.options = emptyMenuOptions
	case StateDefault:
		m.options = defaultMenuOptions
	case StateFilter:
		m.options = filterMenuOptions
	case StateConfirm:
		m.options = confirmMenuOptions
	case StateBreakpoint:
		m.options = breakpointMenuOptions
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	// Define group boundaries based on current state
	// Card group: d, p, u (3 items)
	// View group: /, y, b, r (4 items)
	// System group: ?, q (2 items)
	var groups []struct {
		start int
		end   int
	}

	switch m.state {
	case StateDefault:
		groups = []struct {
			start int
			end   int
		}{
			{0, 3},                // Card group (d, p, u)
			{3, 7},                // View group (/, y, b, r)
			{7, len(m.options)},   // System group (?, q)
		}
	case StateEmpty:
		groups = []struct {
			start int
			end   int
		}{
			{0, 2},                // View group (u, r)
			{2, len(m.options)},   // System group (?, q)
		}
	default:
		// Filter, Confirm, or Breakpoint state
		groups = []struct {
			start int
			end   int
		}{
			{0, len(m.options)}, // All options in one group
		}
	}

	for i, k := range m.options {
		binding := keys.GlobalkeyBindings[k]

		var (
			localActionStyle = actionGroupStyle
			localKeyStyle    = keyStyle
			localDescStyle   = descStyle
		)
		if m.keyDown == k {
			localActionStyle = localActionStyle.Underline(true)
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		// The card-action group gets the accent color in the default state.
		var inActionGroup bool
		if m.state == StateDefault {
			inActionGroup = i < groups[0].end
		}

		if inActionGroup {
			s.WriteString(localActionStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localActionStyle.Render(binding.Help().Desc))
		} else {
			s.WriteString(localKeyStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localDescStyle.Render(binding.Help().Desc))
		}

		// Add appropriate separator
		if i != len(m.options)-1 {
			isGroupEnd := false
			for _, group := range groups {
				if i == group.end-1 {
					s.WriteString(sepStyle.Render(verticalSeparator))
					isGroupEnd = true
					break
				}
			}
			if !isGroupEnd {
				s.WriteString(sepStyle.Render(separator))
			}
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}
