package inspect

import (
	"fmt"
	"strings"
	"time"

	"gridboard/grid"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	// Timestamp when the snapshot was taken.
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	// Terminal contains terminal dimensions.
	Terminal TerminalInfo `json:"terminal"`

	// AppState contains application state information.
	AppState AppStateInfo `json:"app_state"`

	// Layout contains the packed layout.
	Layout LayoutInfo `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components"`

	// Breakpoints contains the configured breakpoint table and which tier
	// is active.
	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the current app state (e.g., "default", "filter", "confirm").
	State string `json:"state"`

	// HasOverlay indicates if an overlay is currently displayed.
	HasOverlay bool `json:"has_overlay"`

	// OverlayType is the type of overlay if one is displayed.
	OverlayType string `json:"overlay_type,omitempty"`

	// CardCount is the number of cards on the board.
	CardCount int `json:"card_count"`

	// SelectedID is the id of the selected card.
	SelectedID string `json:"selected_id,omitempty"`

	// Filter is the active filter query if any.
	Filter string `json:"filter,omitempty"`

	// ErrorMessage is the current error message if any.
	ErrorMessage string `json:"error_message,omitempty"`
}

// LayoutInfo contains the packed layout.
type LayoutInfo struct {
	// Breakpoint is the tier the board is packed for.
	Breakpoint string `json:"breakpoint"`

	// Forced is true when the tier is pinned for previewing rather than
	// resolved from the terminal width.
	Forced bool `json:"forced,omitempty"`

	// Columns is the grid column count at this tier.
	Columns int `json:"columns"`

	// Rows is the number of occupied grid rows.
	Rows int `json:"rows"`

	// Gap is the spacing between cells.
	Gap int `json:"gap"`

	// CellSize is the fractional width of one column cell.
	CellSize float64 `json:"cell_size"`

	// Placements lists every packed card in packing order.
	Placements []PlacementInfo `json:"placements"`
}

// PlacementInfo is one packed card's position, 1-based.
type PlacementInfo struct {
	ID      string `json:"id"`
	Col     int    `json:"col"`
	Row     int    `json:"row"`
	ColSpan int    `json:"col_span"`
	RowSpan int    `json:"row_span"`
}

// BreakpointInfo contains one tier of the breakpoint table.
type BreakpointInfo struct {
	// Name is the tier name.
	Name string `json:"name"`

	// MinWidth is the width threshold for the tier.
	MinWidth int `json:"min_width"`

	// Active indicates if this is the tier the board is packed for.
	Active bool `json:"active"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithLayout sets layout info from a packed layout and the breakpoint table
// it was resolved against.
func (s *Snapshot) WithLayout(layout grid.Layout, gap int, forced bool, table grid.BreakpointTable) *Snapshot {
	info := LayoutInfo{
		Breakpoint: layout.Breakpoint,
		Forced:     forced,
		Columns:    layout.Columns,
		Rows:       layout.Rows(),
		Gap:        gap,
		CellSize:   layout.CellSize,
	}
	for _, p := range layout.Placements {
		info.Placements = append(info.Placements, PlacementInfo{
			ID:      p.ID,
			Col:     p.Col,
			Row:     p.Row,
			ColSpan: p.ColSpan,
			RowSpan: p.RowSpan,
		})
	}
	s.Layout = info

	s.Breakpoints = nil
	for _, bp := range table {
		s.Breakpoints = append(s.Breakpoints, BreakpointInfo{
			Name:     bp.Name,
			MinWidth: bp.MinWidth,
			Active:   bp.Name == layout.Breakpoint,
		})
	}

	return s
}

// WithAppState sets application state info.
func (s *Snapshot) WithAppState(state AppStateInfo) *Snapshot {
	s.AppState = state
	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("State: %s\n", s.AppState.State))

	b.WriteString("\n--- Layout ---\n")
	tier := s.Layout.Breakpoint
	if s.Layout.Forced {
		tier += " (forced)"
	}
	b.WriteString(fmt.Sprintf("Breakpoint: %s\n", tier))
	b.WriteString(fmt.Sprintf("Grid: %d columns x %d rows, gap %d\n", s.Layout.Columns, s.Layout.Rows, s.Layout.Gap))
	b.WriteString(fmt.Sprintf("Cell size: %.2f\n", s.Layout.CellSize))

	b.WriteString("\n--- Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (min width: %d)\n", status, bp.Name, bp.MinWidth))
	}

	if len(s.Layout.Placements) > 0 {
		b.WriteString("\n--- Placements ---\n")
		for _, p := range s.Layout.Placements {
			b.WriteString(fmt.Sprintf("  %s at (%d,%d) span %dx%d\n", p.ID, p.Col, p.Row, p.ColSpan, p.RowSpan))
		}
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d)", node.Bounds.Width, node.Bounds.Height))

	if node.Truncated != nil {
		b.WriteString(fmt.Sprintf(" TRUNCATED(%d->%d)",
			node.Truncated.OriginalLength,
			node.Truncated.DisplayLength))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
