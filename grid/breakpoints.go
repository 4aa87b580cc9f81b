// Package grid implements responsive grid packing: breakpoint resolution,
// per-breakpoint size lookup with mobile-first fallback, and a deterministic
// gap-filling placement algorithm. It performs no I/O and holds no state
// across calls, so independent grids can pack concurrently without locking.
package grid

import "fmt"

// BaseBreakpoint is the zero-width breakpoint that matches every width.
// Every table ends in it, which makes Resolve total.
const BaseBreakpoint = "base"

// Breakpoint is a named width tier. A breakpoint is active for all widths
// greater than or equal to MinWidth, unless a wider tier matches first.
type Breakpoint struct {
	Name     string
	MinWidth int
}

// BreakpointTable is an ordered list of breakpoints, strictly descending by
// MinWidth and terminated by the zero-width base entry. Build one with
// NewBreakpointTable and treat it as immutable afterwards.
type BreakpointTable []Breakpoint

// Default width tiers, in terminal columns.
const (
	CompactWidth  = 80
	StandardWidth = 100
	WideWidth     = 120
	FullWidth     = 140
)

// DefaultBreakpoints returns the standard tier table used when the
// configuration does not define its own.
func DefaultBreakpoints() BreakpointTable {
	return BreakpointTable{
		{Name: "full", MinWidth: FullWidth},
		{Name: "wide", MinWidth: WideWidth},
		{Name: "standard", MinWidth: StandardWidth},
		{Name: "compact", MinWidth: CompactWidth},
		{Name: BaseBreakpoint, MinWidth: 0},
	}
}

// NewBreakpointTable validates and normalizes a breakpoint table.
// Entries must be strictly descending by MinWidth with unique names.
// If the final entry is not zero-width, a base entry is appended so the
// table always resolves.
func NewBreakpointTable(bps ...Breakpoint) (BreakpointTable, error) {
	if len(bps) == 0 {
		return DefaultBreakpoints(), nil
	}

	seen := make(map[string]bool, len(bps))
	for i, bp := range bps {
		if bp.Name == "" {
			return nil, fmt.Errorf("breakpoint %d has an empty name", i)
		}
		if seen[bp.Name] {
			return nil, fmt.Errorf("duplicate breakpoint name %q", bp.Name)
		}
		seen[bp.Name] = true
		if bp.MinWidth < 0 {
			return nil, fmt.Errorf("breakpoint %q has negative min width %d", bp.Name, bp.MinWidth)
		}
		if i > 0 && bp.MinWidth >= bps[i-1].MinWidth {
			return nil, fmt.Errorf("breakpoint %q (min width %d) must be narrower than %q (min width %d)",
				bp.Name, bp.MinWidth, bps[i-1].Name, bps[i-1].MinWidth)
		}
	}

	table := make(BreakpointTable, len(bps))
	copy(table, bps)
	if table[len(table)-1].MinWidth != 0 {
		if seen[BaseBreakpoint] {
			return nil, fmt.Errorf("breakpoint %q must be the zero-width fallback", BaseBreakpoint)
		}
		table = append(table, Breakpoint{Name: BaseBreakpoint, MinWidth: 0})
	}
	return table, nil
}

// Resolve returns the name of the first breakpoint whose MinWidth does not
// exceed width. The terminating zero-width entry guarantees a match, so
// Resolve never fails. Negative widths resolve to the base entry.
func (t BreakpointTable) Resolve(width int) string {
	for _, bp := range t {
		if bp.MinWidth <= width {
			return bp.Name
		}
	}
	// Only reachable with a hand-built table missing its base entry.
	return BaseBreakpoint
}

// indexOf returns the position of name in the table, or -1.
func (t BreakpointTable) indexOf(name string) int {
	for i, bp := range t {
		if bp.Name == name {
			return i
		}
	}
	return -1
}
