package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSize(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		columns int
		gap     int
		want    float64
	}{
		{name: "even division without gap", width: 120, columns: 4, gap: 0, want: 30},
		{name: "gap subtracted before dividing", width: 121, columns: 4, gap: 1, want: 29.5},
		{name: "single column ignores gap", width: 80, columns: 1, gap: 2, want: 80},
		{name: "unmeasured container", width: 0, columns: 4, gap: 1, want: 0},
		{name: "negative width", width: -10, columns: 4, gap: 1, want: 0},
		{name: "degenerate column count treated as one", width: 50, columns: 0, gap: 1, want: 50},
		{name: "negative gap treated as zero", width: 100, columns: 4, gap: -2, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CellSize(tt.width, tt.columns, tt.gap), 0.0001)
		})
	}
}

func TestSpanWidth(t *testing.T) {
	cell := CellSize(121, 4, 1) // 29.5

	assert.Equal(t, 29, SpanWidth(cell, 1, 1))
	assert.Equal(t, 60, SpanWidth(cell, 2, 1)) // 29.5*2 + 1
	assert.Equal(t, 121, SpanWidth(cell, 4, 1))

	assert.Equal(t, 0, SpanWidth(cell, 0, 1))
	assert.Equal(t, 0, SpanWidth(0, 2, 1))
}

func TestSpanWidthNeverExceedsContainer(t *testing.T) {
	for width := 20; width <= 200; width++ {
		for columns := 1; columns <= 8; columns++ {
			for gap := 0; gap <= 2; gap++ {
				cell := CellSize(width, columns, gap)
				total := SpanWidth(cell, columns, gap)
				assert.LessOrEqual(t, total, width,
					"width=%d columns=%d gap=%d", width, columns, gap)
			}
		}
	}
}
