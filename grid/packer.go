package grid

import (
	"math"
	"sort"

	"gridboard/log"
)

// Item is one entity to be placed. Priority orders placement (lower first);
// a nil priority sorts after every explicit one.
type Item struct {
	ID       string
	Sizes    SizeSet
	Priority *int
}

// Placement is where one item landed. Col and Row are 1-based so they can be
// handed directly to grid-area style renderers.
type Placement struct {
	ID      string
	Col     int
	Row     int
	ColSpan int
	RowSpan int
}

// Layout is the full result of one layout computation: the placements plus
// the resolved inputs the renderer needs alongside them.
type Layout struct {
	Placements []Placement
	Columns    int
	Breakpoint string
	CellSize   float64
}

// Rows returns the vertical extent of the layout in rows.
func (l Layout) Rows() int {
	max := 0
	for _, p := range l.Placements {
		if bottom := p.Row + p.RowSpan - 1; bottom > max {
			max = bottom
		}
	}
	return max
}

// packEntry is an item with its size resolved for the active breakpoint.
type packEntry struct {
	id       string
	cols     int // clamped to the grid width
	rows     int
	area     int // declared cols x rows, before clamping
	priority int
}

// Pack places items into a grid that is columns wide, returning one
// placement per item in placement order.
//
// Items are sorted by ascending priority, ties broken by descending declared
// area so large items are placed while the grid is still open. Each item is
// then placed greedily, never reconsidered: first by scanning already-used
// rows column-by-column for a gap that fits, and only when no gap exists by
// opening a new row below everything placed so far. The scan order is part
// of the contract; identical inputs always produce identical placements.
func Pack(items []Item, columns int, active string, table BreakpointTable) []Placement {
	if columns < 1 {
		log.WarningLog.Printf("pack called with columns=%d, using 1", columns)
		columns = 1
	}
	if len(table) == 0 {
		table = DefaultBreakpoints()
	}

	entries := make([]packEntry, len(items))
	for i, it := range items {
		declared := table.ResolveSize(it.Sizes, active)
		cols := declared.Cols
		if cols > columns {
			// An item may never be wider than the grid. Area keeps the
			// declared width so oversized items still sort as large.
			cols = columns
		}
		priority := math.MaxInt
		if it.Priority != nil {
			priority = *it.Priority
		}
		entries[i] = packEntry{
			id:       it.ID,
			cols:     cols,
			rows:     declared.Rows,
			area:     declared.Cols * declared.Rows,
			priority: priority,
		}
	}

	// Stable so that full ties keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].area > entries[j].area
	})

	surface := newOccupancy(columns)
	placements := make([]Placement, 0, len(entries))
	for _, e := range entries {
		col, row := surface.place(e.cols, e.rows)
		log.PackTrace("%s (%dx%d) -> col=%d row=%d", e.id, e.cols, e.rows, col+1, row+1)
		placements = append(placements, Placement{
			ID:      e.id,
			Col:     col + 1,
			Row:     row + 1,
			ColSpan: e.cols,
			RowSpan: e.rows,
		})
	}
	return placements
}

// ComputeLayout resolves the column count for the active breakpoint, packs
// the items, and bundles the cell size derived from the container width.
// It is the one-call form used on every relayout.
func ComputeLayout(items []Item, table BreakpointTable, cols ColumnTable, active string, containerWidth, gap int) Layout {
	done := log.GetProfiler().StartPhase("pack")
	defer done()

	columns := table.ResolveColumns(cols, active)
	return Layout{
		Placements: Pack(items, columns, active, table),
		Columns:    columns,
		Breakpoint: active,
		CellSize:   CellSize(containerWidth, columns, gap),
	}
}

// occupancy is the transient 2-D boolean surface for one pack run. Rows grow
// on demand; cells below maxRow that no item touched stay free.
type occupancy struct {
	columns int
	cells   [][]bool
	maxRow  int // highest occupied row index, -1 when empty
}

func newOccupancy(columns int) *occupancy {
	return &occupancy{columns: columns, maxRow: -1}
}

// place finds the slot for a cols x rows footprint and marks it, returning
// the 0-based top-left cell.
func (o *occupancy) place(cols, rows int) (int, int) {
	// Phase 1: fill gaps in rows already touched, leftmost column first,
	// topmost row within each column. The footprint may hang below maxRow;
	// those cells are free by definition.
	for col := 0; col+cols <= o.columns; col++ {
		for row := 0; row <= o.maxRow; row++ {
			if o.fits(col, row, cols, rows) {
				o.mark(col, row, cols, rows)
				return col, row
			}
		}
	}

	// Phase 2: open a new row below everything placed so far. The footprint
	// is already clamped to the grid width, so the scan always succeeds.
	row := o.maxRow + 1
	for col := 0; col+cols <= o.columns; col++ {
		if o.fits(col, row, cols, rows) {
			o.mark(col, row, cols, rows)
			return col, row
		}
	}

	// Unreachable: an empty row always fits a clamped footprint at column 0.
	o.mark(0, row, cols, rows)
	return 0, row
}

func (o *occupancy) fits(col, row, cols, rows int) bool {
	for r := row; r < row+rows; r++ {
		if r >= len(o.cells) {
			// Unallocated rows are empty, and so is everything below them.
			break
		}
		for c := col; c < col+cols; c++ {
			if o.cells[r][c] {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) mark(col, row, cols, rows int) {
	for len(o.cells) < row+rows {
		o.cells = append(o.cells, make([]bool, o.columns))
	}
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			o.cells[r][c] = true
		}
	}
	if row+rows-1 > o.maxRow {
		o.maxRow = row + rows - 1
	}
}
