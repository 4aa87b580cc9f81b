package grid

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int {
	return &n
}

func baseItem(id string, cols, rows int) Item {
	return Item{ID: id, Sizes: SizeSet{BaseBreakpoint: {Cols: cols, Rows: rows}}}
}

// rect occupancy check shared by the invariant tests
func overlaps(a, b Placement) bool {
	aRight := a.Col + a.ColSpan - 1
	aBottom := a.Row + a.RowSpan - 1
	bRight := b.Col + b.ColSpan - 1
	bBottom := b.Row + b.RowSpan - 1
	return a.Col <= bRight && b.Col <= aRight && a.Row <= bBottom && b.Row <= aBottom
}

func assertInvariants(t *testing.T, items []Item, placements []Placement, columns int) {
	t.Helper()

	// Completeness: every input id exactly once
	require.Len(t, placements, len(items))
	seen := make(map[string]int)
	for _, p := range placements {
		seen[p.ID]++
	}
	for _, it := range items {
		assert.Equal(t, 1, seen[it.ID], "item %s should be placed exactly once", it.ID)
	}

	for _, p := range placements {
		// 1-based coordinates with positive spans
		assert.GreaterOrEqual(t, p.Col, 1, "%s col", p.ID)
		assert.GreaterOrEqual(t, p.Row, 1, "%s row", p.ID)
		assert.GreaterOrEqual(t, p.ColSpan, 1, "%s colspan", p.ID)
		assert.GreaterOrEqual(t, p.RowSpan, 1, "%s rowspan", p.ID)

		// No overflow past the grid's right edge
		assert.LessOrEqual(t, p.Col+p.ColSpan-1, columns, "%s overflows %d columns", p.ID, columns)
	}

	// No overlap between any pair
	for i := 0; i < len(placements); i++ {
		for j := i + 1; j < len(placements); j++ {
			assert.False(t, overlaps(placements[i], placements[j]),
				"%s and %s overlap", placements[i].ID, placements[j].ID)
		}
	}
}

func TestPackScenario(t *testing.T) {
	// Wide item first, two small items share the next row.
	items := []Item{
		baseItem("a", 2, 1),
		baseItem("b", 1, 1),
		baseItem("c", 1, 1),
	}

	placements := Pack(items, 2, BaseBreakpoint, DefaultBreakpoints())
	assertInvariants(t, items, placements, 2)

	expected := []Placement{
		{ID: "a", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
		{ID: "b", Col: 1, Row: 2, ColSpan: 1, RowSpan: 1},
		{ID: "c", Col: 2, Row: 2, ColSpan: 1, RowSpan: 1},
	}
	assert.Equal(t, expected, placements)
}

func TestPackGapFill(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		columns  int
		expected []Placement
	}{
		{
			name: "small items fill the row after a full-width item",
			items: []Item{
				baseItem("wide", 2, 1),
				baseItem("s1", 1, 1),
				baseItem("s2", 1, 1),
			},
			columns: 2,
			expected: []Placement{
				{ID: "wide", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
				{ID: "s1", Col: 1, Row: 2, ColSpan: 1, RowSpan: 1},
				{ID: "s2", Col: 2, Row: 2, ColSpan: 1, RowSpan: 1},
			},
		},
		{
			name: "gap beside a tall item is filled before the grid grows",
			items: []Item{
				baseItem("tall", 1, 3),
				baseItem("wide", 2, 1),
				baseItem("s1", 1, 1),
			},
			columns: 3,
			expected: []Placement{
				// tall sorts first (area 3), wide second (area 2)
				{ID: "tall", Col: 1, Row: 1, ColSpan: 1, RowSpan: 3},
				{ID: "wide", Col: 2, Row: 1, ColSpan: 2, RowSpan: 1},
				{ID: "s1", Col: 2, Row: 2, ColSpan: 1, RowSpan: 1},
			},
		},
		{
			name: "item too wide for remaining gap overflows to a new row",
			items: []Item{
				baseItem("left", 1, 1),
				baseItem("wide", 2, 1),
			},
			columns: 2,
			expected: []Placement{
				{ID: "wide", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
				{ID: "left", Col: 1, Row: 2, ColSpan: 1, RowSpan: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placements := Pack(tt.items, tt.columns, BaseBreakpoint, DefaultBreakpoints())
			assertInvariants(t, tt.items, placements, tt.columns)
			assert.Equal(t, tt.expected, placements)
		})
	}
}

func TestPackPriorityOrdering(t *testing.T) {
	// Two 1x1 items: priority 0 must take the first scanned cell.
	items := []Item{
		{ID: "b", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 1}}, Priority: intp(1)},
		{ID: "a", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 1}}, Priority: intp(0)},
	}

	placements := Pack(items, 2, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 2)

	assert.Equal(t, Placement{ID: "a", Col: 1, Row: 1, ColSpan: 1, RowSpan: 1}, placements[0])
	assert.Equal(t, Placement{ID: "b", Col: 1, Row: 2, ColSpan: 1, RowSpan: 1}, placements[1])
}

func TestPackPriorityBeatsArea(t *testing.T) {
	items := []Item{
		{ID: "big", Sizes: SizeSet{BaseBreakpoint: {Cols: 3, Rows: 2}}, Priority: intp(5)},
		{ID: "small", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 1}}, Priority: intp(0)},
	}

	placements := Pack(items, 3, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 2)
	assert.Equal(t, "small", placements[0].ID, "lower priority places first regardless of area")
	assert.Equal(t, 1, placements[0].Col)
	assert.Equal(t, 1, placements[0].Row)
}

func TestPackMissingPrioritySortsLast(t *testing.T) {
	items := []Item{
		baseItem("nopri", 1, 1),
		{ID: "pri", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 1}}, Priority: intp(1000)},
	}

	placements := Pack(items, 2, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 2)
	assert.Equal(t, "pri", placements[0].ID, "any explicit priority beats an absent one")
}

func TestPackAreaTieBreak(t *testing.T) {
	// Equal priority: larger area places first.
	items := []Item{
		{ID: "small", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 1}}, Priority: intp(0)},
		{ID: "big", Sizes: SizeSet{BaseBreakpoint: {Cols: 2, Rows: 2}}, Priority: intp(0)},
	}

	placements := Pack(items, 4, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 2)
	assert.Equal(t, "big", placements[0].ID)
	assert.Equal(t, 1, placements[0].Col)
	// small fits in the gap to the right of big
	assert.Equal(t, Placement{ID: "small", Col: 3, Row: 1, ColSpan: 1, RowSpan: 1}, placements[1])
}

func TestPackClampsOversizedItems(t *testing.T) {
	items := []Item{baseItem("huge", 5, 1)}

	placements := Pack(items, 4, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 1)
	assert.Equal(t, 4, placements[0].ColSpan, "colspan must clamp to the grid width")
	assert.Equal(t, 1, placements[0].Col)
}

func TestPackOversizedAreaStillSortsLarge(t *testing.T) {
	// huge declares 6x1 (area 6) and clamps to 2 wide; it must still place
	// before the 2x2 (area 4) at equal priority.
	items := []Item{
		{ID: "block", Sizes: SizeSet{BaseBreakpoint: {Cols: 2, Rows: 2}}, Priority: intp(0)},
		{ID: "huge", Sizes: SizeSet{BaseBreakpoint: {Cols: 6, Rows: 1}}, Priority: intp(0)},
	}

	placements := Pack(items, 2, BaseBreakpoint, DefaultBreakpoints())
	require.Len(t, placements, 2)
	assert.Equal(t, "huge", placements[0].ID)
}

func TestPackNonPositiveColumns(t *testing.T) {
	items := []Item{baseItem("a", 2, 1)}

	for _, columns := range []int{0, -3} {
		placements := Pack(items, columns, BaseBreakpoint, DefaultBreakpoints())
		require.Len(t, placements, 1)
		assert.Equal(t, 1, placements[0].ColSpan, "columns %d should degrade to a single column", columns)
	}
}

func TestPackMalformedSizes(t *testing.T) {
	items := []Item{
		{ID: "zero", Sizes: SizeSet{BaseBreakpoint: {Cols: 0, Rows: -2}}},
		{ID: "none", Sizes: nil},
	}

	placements := Pack(items, 3, BaseBreakpoint, DefaultBreakpoints())
	assertInvariants(t, items, placements, 3)
	for _, p := range placements {
		assert.Equal(t, 1, p.ColSpan)
		assert.Equal(t, 1, p.RowSpan)
	}
}

func TestPackEmpty(t *testing.T) {
	assert.Empty(t, Pack(nil, 4, BaseBreakpoint, DefaultBreakpoints()))
}

func TestPackDeterminism(t *testing.T) {
	items := []Item{
		{ID: "a", Sizes: SizeSet{BaseBreakpoint: {Cols: 2, Rows: 2}}, Priority: intp(1)},
		{ID: "b", Sizes: SizeSet{BaseBreakpoint: {Cols: 1, Rows: 3}}, Priority: intp(1)},
		baseItem("c", 1, 1),
		baseItem("d", 3, 1),
		{ID: "e", Sizes: SizeSet{BaseBreakpoint: {Cols: 2, Rows: 1}}, Priority: intp(0)},
	}

	first := Pack(items, 4, BaseBreakpoint, DefaultBreakpoints())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Pack(items, 4, BaseBreakpoint, DefaultBreakpoints()))
	}
}

func TestPackRandomizedInvariants(t *testing.T) {
	// Seeded, so failures reproduce.
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		columns := 1 + rng.Intn(8)
		n := 1 + rng.Intn(20)
		items := make([]Item, n)
		for i := range items {
			it := Item{
				ID: string(rune('a'+i%26)) + string(rune('0'+i/26)),
				Sizes: SizeSet{BaseBreakpoint: {
					Cols: 1 + rng.Intn(5),
					Rows: 1 + rng.Intn(4),
				}},
			}
			if rng.Intn(2) == 0 {
				it.Priority = intp(rng.Intn(5))
			}
			items[i] = it
		}

		placements := Pack(items, columns, BaseBreakpoint, DefaultBreakpoints())
		assertInvariants(t, items, placements, columns)
	}
}

func TestPackResolvesAtActiveBreakpoint(t *testing.T) {
	table := DefaultBreakpoints()
	items := []Item{
		{ID: "card", Sizes: SizeSet{
			BaseBreakpoint: {Cols: 1, Rows: 1},
			"wide":         {Cols: 3, Rows: 2},
		}},
	}

	atBase := Pack(items, 4, BaseBreakpoint, table)
	assert.Equal(t, 1, atBase[0].ColSpan)
	assert.Equal(t, 1, atBase[0].RowSpan)

	atWide := Pack(items, 4, "wide", table)
	assert.Equal(t, 3, atWide[0].ColSpan)
	assert.Equal(t, 2, atWide[0].RowSpan)

	// full falls back to the wide definition, not base
	atFull := Pack(items, 4, "full", table)
	assert.Equal(t, 3, atFull[0].ColSpan)
}

func TestComputeLayout(t *testing.T) {
	table := DefaultBreakpoints()
	cols := ColumnTable{BaseBreakpoint: 2, "standard": 4}
	items := []Item{
		baseItem("a", 2, 1),
		baseItem("b", 1, 1),
		baseItem("c", 1, 1),
	}

	layout := ComputeLayout(items, table, cols, BaseBreakpoint, 79, 1)
	assert.Equal(t, 2, layout.Columns)
	assert.Equal(t, BaseBreakpoint, layout.Breakpoint)
	assert.InDelta(t, 39.0, layout.CellSize, 0.001)
	assert.Equal(t, 2, layout.Rows())

	layout = ComputeLayout(items, table, cols, "standard", 100, 1)
	assert.Equal(t, 4, layout.Columns)
	assert.Equal(t, 1, layout.Rows(), "all three items fit one row at four columns")
}
