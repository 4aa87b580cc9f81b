package ui

import "github.com/charmbracelet/lipgloss"

// Semantic Color Palette
// Designed for accessibility (colorblind-safe) with both color and shape differentiation.

// Card accent colors - each card state has a distinct color and associated icon
var (
	// AccentPinned marks pinned cards
	// Color: Amber, Icon: "●"
	AccentPinned = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// AccentFresh marks cards updated recently
	// Color: Green
	AccentFresh = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

	// AccentStale marks cards that have not been updated in a while
	// Color: Gray
	AccentStale = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

	// AccentError indicates load or watch failures
	// Color: Red, Icon: "x"
	AccentError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color for the selected card
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (bodies, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and footers
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Background is the main background color
	Background = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1a1a1a"}

	// BackgroundSubtle is for overlays and modals
	BackgroundSubtle = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#2a2a2a"}

	// BackgroundSelected is for the selected card's title line
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}
)

// Icons for accessibility (shape + color)
const (
	IconPinned   = "●"
	IconError    = "×"
	IconFiltered = "/"
)

// Pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
}

// BadgeStyle creates a styled badge with the given color
func BadgeStyle(color lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1)
}

// StatusBadge returns a formatted status badge string
func StatusBadge(status string, color lipgloss.TerminalColor) string {
	return BadgeStyle(color).Render(status)
}

// OverlayStyle creates a style for overlay/modal containers
func OverlayStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(1, 2).
		Background(BackgroundSubtle)
}

// CardStyle creates a style for card containers
func CardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
}

// PinnedCardStyle creates a style for pinned card containers
func PinnedCardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentPinned).
		Padding(0, 1)
}

// FocusedCardStyle creates a style for the selected card container
func FocusedCardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderFocus).
		Padding(0, 1)
}
