package ui

import (
	"strings"
	"testing"
	"time"

	"gridboard/card"
	"gridboard/grid"
	"gridboard/testing/snapshot"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) *Board {
	t.Helper()

	layout := grid.Layout{
		Columns:    2,
		Breakpoint: "standard",
		Placements: []grid.Placement{
			{ID: "a", Col: 1, Row: 1, ColSpan: 2, RowSpan: 1},
			{ID: "b", Col: 1, Row: 2, ColSpan: 1, RowSpan: 1},
			{ID: "c", Col: 2, Row: 2, ColSpan: 1, RowSpan: 1},
		},
	}
	cards := map[string]*card.Card{
		"a": {ID: "a", Title: "Build status", Body: "All green across the fleet.", Updated: time.Now()},
		"b": {ID: "b", Title: "Open incidents", Body: "None.", Updated: time.Now()},
		"c": {ID: "c", Title: "Deploys", Body: "3 today.", Updated: time.Now()},
	}
	states := map[string]card.CardState{
		"b": {Pinned: true},
	}

	b := NewBoard(nil)
	b.SetSize(40, 20)
	b.SetGap(1)
	b.SetCellHeight(4)
	b.SetLayout(layout, cards, states)
	return b
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths(80, 4, 1)
	require.Len(t, widths, 4)

	// The full width is used: columns plus the gaps between them.
	sum := 0
	for _, w := range widths {
		sum += w
	}
	assert.Equal(t, 80, sum+3)

	// The division remainder lands on the leftmost columns.
	assert.Equal(t, []int{20, 19, 19, 19}, widths)
}

func TestColumnWidthsDegenerate(t *testing.T) {
	// Too narrow to matter, but never zero or negative widths.
	for _, w := range columnWidths(3, 6, 1) {
		assert.GreaterOrEqual(t, w, 1)
	}
	// Zero columns clamps to one.
	assert.Len(t, columnWidths(40, 0, 1), 1)
}

func TestSpanWidthCoversGaps(t *testing.T) {
	widths := []int{20, 19, 19, 19}

	// A full-width span equals the whole board width.
	assert.Equal(t, 80, spanWidth(widths, 1, 4, 1))

	// A 2-wide span starting at column 2 covers both columns and the gap
	// between them.
	assert.Equal(t, 39, spanWidth(widths, 2, 2, 1))

	// Offsets line up with widths: column 3 starts after columns 1-2 and
	// their trailing gaps.
	assert.Equal(t, 41, colOffset(widths, 3, 1))
}

func TestBoardCardBoxSize(t *testing.T) {
	b := testBoard(t)

	box := b.renderCard("a", 20, 4, false)
	assert.Equal(t, 20, lipgloss.Width(box))
	assert.Equal(t, 4, lipgloss.Height(box))

	// Selection changes the border, not the size.
	box = b.renderCard("a", 20, 4, true)
	assert.Equal(t, 20, lipgloss.Width(box))
	assert.Equal(t, 4, lipgloss.Height(box))
}

func TestBoardRenderFitsWidth(t *testing.T) {
	b := testBoard(t)

	out := b.String()
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 40)
	}
	assert.Contains(t, out, "Build status")
	assert.Contains(t, out, "Open incidents")
}

func TestBoardEmpty(t *testing.T) {
	b := NewBoard(nil)
	b.SetSize(40, 10)
	b.SetLayout(grid.Layout{Columns: 2, Breakpoint: "base"}, nil, nil)

	assert.Nil(t, b.Selected())
	assert.Nil(t, b.SelectedCard())
	assert.Contains(t, b.String(), "no cards to show")

	b.SetFilter("nope")
	assert.Contains(t, b.String(), `no cards match "nope"`)

	// Navigation on an empty board is a noop.
	b.Down()
	b.Right()
	assert.Nil(t, b.Selected())
}

func TestBoardNavigation(t *testing.T) {
	b := testBoard(t)

	// Starts on the first placement.
	require.NotNil(t, b.Selected())
	assert.Equal(t, "a", b.Selected().ID)

	// Down goes to the nearest card on the next row; "b" is column-closest.
	b.Down()
	assert.Equal(t, "b", b.Selected().ID)

	// Right follows reading order within the board.
	b.Right()
	assert.Equal(t, "c", b.Selected().ID)

	// Right at the end stays put.
	b.Right()
	assert.Equal(t, "c", b.Selected().ID)

	// Up from the second row lands back on the banner.
	b.Up()
	assert.Equal(t, "a", b.Selected().ID)

	// Left at the start stays put.
	b.Left()
	assert.Equal(t, "a", b.Selected().ID)
}

func TestBoardSelectByID(t *testing.T) {
	b := testBoard(t)

	b.SelectByID("c")
	assert.Equal(t, "c", b.Selected().ID)

	// Unknown id is a noop.
	b.SelectByID("zzz")
	assert.Equal(t, "c", b.Selected().ID)
}

func TestBoardSelectionSurvivesRelayout(t *testing.T) {
	b := testBoard(t)
	b.SelectByID("c")

	// Shrinking the layout clamps the selection instead of pointing past
	// the end.
	layout := grid.Layout{
		Columns:    1,
		Breakpoint: "base",
		Placements: []grid.Placement{
			{ID: "a", Col: 1, Row: 1, ColSpan: 1, RowSpan: 1},
		},
	}
	b.SetLayout(layout, b.cards, b.states)
	require.NotNil(t, b.Selected())
	assert.Equal(t, "a", b.Selected().ID)
}

func TestGridAreaText(t *testing.T) {
	b := testBoard(t)

	text := b.GridAreaText()
	assert.Contains(t, text, "/* standard: 2 columns */")
	assert.Contains(t, text, "#a { grid-area: 1 / 1 / span 1 / span 2; }")
	assert.Contains(t, text, "#b { grid-area: 2 / 1 / span 1 / span 1; }")
	assert.Contains(t, text, "#c { grid-area: 2 / 2 / span 1 / span 1; }")

	// Rules come out in reading order, not packing order.
	aIdx := strings.Index(text, "#a")
	bIdx := strings.Index(text, "#b")
	cIdx := strings.Index(text, "#c")
	assert.Less(t, aIdx, bIdx)
	assert.Less(t, bIdx, cIdx)
}

func TestBoardRenderContent(t *testing.T) {
	b := testBoard(t)
	snap := snapshot.New(t)

	out := b.String()
	assert.LessOrEqual(t, snapshot.Width(out), 40)

	// Pinned cards carry the pin icon; the others don't render one.
	snap.AssertContains(out, IconPinned)
	snap.AssertContains(out, "Open incidents")
	snap.AssertContains(out, "All green")

	// Dismissed cards never reach the board, so nothing outside the layout
	// shows up.
	snap.AssertNotContains(out, "zzz")
}

func TestFormatUpdated(t *testing.T) {
	assert.Equal(t, "never", FormatUpdated(time.Time{}))
	assert.Equal(t, "just now", FormatUpdated(time.Now()))
	assert.Equal(t, "2h ago", FormatUpdated(time.Now().Add(-2*time.Hour)))
}
