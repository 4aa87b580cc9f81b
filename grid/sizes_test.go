package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSize(t *testing.T) {
	table := DefaultBreakpoints()

	tests := []struct {
		name   string
		sizes  SizeSet
		active string
		want   Size
	}{
		{
			name:   "exact match at active breakpoint",
			sizes:  SizeSet{"wide": {Cols: 3, Rows: 2}, BaseBreakpoint: {Cols: 1, Rows: 1}},
			active: "wide",
			want:   Size{Cols: 3, Rows: 2},
		},
		{
			name:   "cascades down to base",
			sizes:  SizeSet{BaseBreakpoint: {Cols: 2, Rows: 1}},
			active: "full",
			want:   Size{Cols: 2, Rows: 1},
		},
		{
			name:   "skips tiers above the active one",
			sizes:  SizeSet{"full": {Cols: 6, Rows: 3}, BaseBreakpoint: {Cols: 1, Rows: 1}},
			active: "standard",
			want:   Size{Cols: 1, Rows: 1},
		},
		{
			name:   "nearest smaller defined tier wins",
			sizes:  SizeSet{"standard": {Cols: 2, Rows: 2}, BaseBreakpoint: {Cols: 1, Rows: 1}},
			active: "full",
			want:   Size{Cols: 2, Rows: 2},
		},
		{
			name:   "unknown active starts from the widest tier",
			sizes:  SizeSet{"wide": {Cols: 4, Rows: 1}},
			active: "no-such-tier",
			want:   Size{Cols: 4, Rows: 1},
		},
		{
			name:   "base-only set resolves at unknown breakpoint names",
			sizes:  SizeSet{BaseBreakpoint: {Cols: 2, Rows: 3}},
			active: "xxl",
			want:   Size{Cols: 2, Rows: 3},
		},
		{
			name:   "empty set resolves to a single cell",
			sizes:  SizeSet{},
			active: "standard",
			want:   Size{Cols: 1, Rows: 1},
		},
		{
			name:   "nil set resolves to a single cell",
			sizes:  nil,
			active: BaseBreakpoint,
			want:   Size{Cols: 1, Rows: 1},
		},
		{
			name:   "malformed dimensions clamp to one",
			sizes:  SizeSet{BaseBreakpoint: {Cols: 0, Rows: -4}},
			active: BaseBreakpoint,
			want:   Size{Cols: 1, Rows: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.ResolveSize(tt.sizes, tt.active))
		})
	}
}

func TestResolveSizeLastResort(t *testing.T) {
	table := DefaultBreakpoints()

	// Nothing defined at or below compact; the first defined tier in
	// table order is used, and repeatably so.
	sizes := SizeSet{
		"wide": {Cols: 4, Rows: 2},
		"full": {Cols: 6, Rows: 3},
	}
	first := table.ResolveSize(sizes, "compact")
	assert.Equal(t, Size{Cols: 6, Rows: 3}, first, "full precedes wide in the table")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, table.ResolveSize(sizes, "compact"))
	}

	t.Run("table entries beat unknown keys", func(t *testing.T) {
		sizes := SizeSet{
			"full": {Cols: 6, Rows: 3},
			"aa":   {Cols: 2, Rows: 2},
		}
		got := table.ResolveSize(sizes, "standard")
		assert.Equal(t, Size{Cols: 6, Rows: 3}, got)
	})

	t.Run("only unknown keys fall back lexicographically", func(t *testing.T) {
		sizes := SizeSet{
			"zz": {Cols: 3, Rows: 1},
			"aa": {Cols: 2, Rows: 2},
		}
		got := table.ResolveSize(sizes, "standard")
		assert.Equal(t, Size{Cols: 2, Rows: 2}, got)
	})
}

func TestResolveColumns(t *testing.T) {
	table := DefaultBreakpoints()

	tests := []struct {
		name   string
		cols   ColumnTable
		active string
		want   int
	}{
		{
			name:   "exact match",
			cols:   ColumnTable{"standard": 4, BaseBreakpoint: 2},
			active: "standard",
			want:   4,
		},
		{
			name:   "cascades down",
			cols:   ColumnTable{BaseBreakpoint: 2},
			active: "full",
			want:   2,
		},
		{
			name:   "larger tiers do not apply downward",
			cols:   ColumnTable{"full": 6, BaseBreakpoint: 2},
			active: "compact",
			want:   2,
		},
		{
			name:   "empty table uses the global default",
			cols:   ColumnTable{},
			active: "standard",
			want:   DefaultColumns,
		},
		{
			name:   "nil table uses the global default",
			cols:   nil,
			active: BaseBreakpoint,
			want:   DefaultColumns,
		},
		{
			name:   "non-positive count clamps to one",
			cols:   ColumnTable{BaseBreakpoint: 0},
			active: BaseBreakpoint,
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.ResolveColumns(tt.cols, tt.active))
		})
	}
}
