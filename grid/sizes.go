package grid

import (
	"sort"

	"gridboard/log"
)

// DefaultColumns is the grid column count used when no column table entry
// resolves for the active breakpoint.
const DefaultColumns = 12

// Size is an item footprint in grid cells.
type Size struct {
	Cols int
	Rows int
}

// SizeSet maps breakpoint names to the footprint an item wants at that tier.
// A set does not need to cover every breakpoint; lookup cascades toward
// smaller tiers, so a size defined at "base" applies everywhere until a
// larger tier overrides it.
type SizeSet map[string]Size

// ColumnTable maps breakpoint names to the grid's total column count at that
// tier. It resolves with the same cascade as SizeSet.
type ColumnTable map[string]int

// ResolveSize returns the footprint of sizes at the active breakpoint.
//
// The lookup starts at active's position in the table (an unknown name
// starts at the widest tier) and scans toward smaller tiers, returning the
// first defined size. If no tier at or below active defines one, the first
// defined size in table order is used as a last resort, then the
// smallest-named key outside the table; callers should
// define a base size rather than rely on that. An empty set resolves to
// 1x1. Non-positive dimensions are replaced with 1 rather than rejected:
// a layout pass has no useful way to surface an error mid-render.
func (t BreakpointTable) ResolveSize(sizes SizeSet, active string) Size {
	start := t.indexOf(active)
	if start < 0 {
		start = 0
	}
	for i := start; i < len(t); i++ {
		if s, ok := sizes[t[i].Name]; ok {
			return sanitizeSize(s)
		}
	}

	// Nothing at or below the active tier. Fall back to the first size in
	// table order, then to the lexicographically smallest key outside the
	// table. Which size "wins" is not meaningful, but it must be
	// reproducible.
	if len(sizes) > 0 {
		for i := 0; i < start; i++ {
			if s, ok := sizes[t[i].Name]; ok {
				log.WarningLog.Printf("no size defined at or below breakpoint %q, falling back to %q", active, t[i].Name)
				return sanitizeSize(s)
			}
		}
		names := make([]string, 0, len(sizes))
		for name := range sizes {
			names = append(names, name)
		}
		sort.Strings(names)
		log.WarningLog.Printf("no size defined at or below breakpoint %q, falling back to %q", active, names[0])
		return sanitizeSize(sizes[names[0]])
	}
	return Size{Cols: 1, Rows: 1}
}

// ResolveColumns returns the grid column count at the active breakpoint,
// cascading toward smaller tiers like ResolveSize. When nothing resolves the
// global default of 12 applies. Non-positive counts are treated as 1.
func (t BreakpointTable) ResolveColumns(cols ColumnTable, active string) int {
	start := t.indexOf(active)
	if start < 0 {
		start = 0
	}
	for i := start; i < len(t); i++ {
		if n, ok := cols[t[i].Name]; ok {
			if n < 1 {
				log.WarningLog.Printf("column count %d at breakpoint %q clamped to 1", n, t[i].Name)
				return 1
			}
			return n
		}
	}
	return DefaultColumns
}

func sanitizeSize(s Size) Size {
	if s.Cols < 1 {
		log.WarningLog.Printf("size with cols=%d clamped to 1", s.Cols)
		s.Cols = 1
	}
	if s.Rows < 1 {
		log.WarningLog.Printf("size with rows=%d clamped to 1", s.Rows)
		s.Rows = 1
	}
	return s
}
