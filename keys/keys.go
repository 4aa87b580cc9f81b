// Package keys defines the key bindings for the board UI.
package keys

import "github.com/charmbracelet/bubbles/key"

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyDismiss
	KeyRestore
	KeyPin
	KeyFilter
	KeyCopy
	KeyBreakpoint
	KeyReload
	KeyHelp
	KeyQuit

	// Keys used within overlays
	KeyEnter
	KeyEsc
)

// GlobalKeyStringsMap maps string representations of keys to KeyName.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"left":   KeyLeft,
	"h":      KeyLeft,
	"right":  KeyRight,
	"l":      KeyRight,
	"d":      KeyDismiss,
	"u":      KeyRestore,
	"p":      KeyPin,
	"/":      KeyFilter,
	"y":      KeyCopy,
	"b":      KeyBreakpoint,
	"r":      KeyReload,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"enter":  KeyEnter,
	"esc":    KeyEsc,
	"ctrl+c": KeyQuit,
}

// GlobalkeyBindings maps KeyName to its key binding and help text.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	KeyRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	KeyDismiss: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "dismiss"),
	),
	KeyRestore: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "restore dismissed"),
	),
	KeyPin: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pin/unpin"),
	),
	KeyFilter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy layout"),
	),
	KeyBreakpoint: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "preview breakpoint"),
	),
	KeyReload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload deck"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}
