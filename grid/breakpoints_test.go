package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	table := DefaultBreakpoints()

	tests := []struct {
		name  string
		width int
		want  string
	}{
		{name: "very wide terminal", width: 200, want: "full"},
		{name: "exact full threshold", width: 140, want: "full"},
		{name: "just below full", width: 139, want: "wide"},
		{name: "exact wide threshold", width: 120, want: "wide"},
		{name: "standard laptop terminal", width: 110, want: "standard"},
		{name: "exact compact threshold", width: 80, want: "compact"},
		{name: "narrow terminal", width: 60, want: "base"},
		{name: "zero width", width: 0, want: "base"},
		{name: "negative width before measurement", width: -1, want: "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Resolve(tt.width))
		})
	}
}

func TestNewBreakpointTable(t *testing.T) {
	t.Run("empty input yields the default table", func(t *testing.T) {
		table, err := NewBreakpointTable()
		require.NoError(t, err)
		assert.Equal(t, DefaultBreakpoints(), table)
	})

	t.Run("appends base when missing", func(t *testing.T) {
		table, err := NewBreakpointTable(
			Breakpoint{Name: "lg", MinWidth: 120},
			Breakpoint{Name: "sm", MinWidth: 60},
		)
		require.NoError(t, err)
		require.Len(t, table, 3)
		assert.Equal(t, Breakpoint{Name: BaseBreakpoint, MinWidth: 0}, table[2])
	})

	t.Run("keeps an explicit zero-width terminal entry", func(t *testing.T) {
		table, err := NewBreakpointTable(
			Breakpoint{Name: "lg", MinWidth: 120},
			Breakpoint{Name: "tiny", MinWidth: 0},
		)
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, "tiny", table.Resolve(10))
	})

	t.Run("rejects non-descending widths", func(t *testing.T) {
		_, err := NewBreakpointTable(
			Breakpoint{Name: "sm", MinWidth: 60},
			Breakpoint{Name: "lg", MinWidth: 120},
		)
		assert.Error(t, err)
	})

	t.Run("rejects equal widths", func(t *testing.T) {
		_, err := NewBreakpointTable(
			Breakpoint{Name: "a", MinWidth: 100},
			Breakpoint{Name: "b", MinWidth: 100},
		)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		_, err := NewBreakpointTable(
			Breakpoint{Name: "md", MinWidth: 100},
			Breakpoint{Name: "md", MinWidth: 50},
		)
		assert.Error(t, err)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := NewBreakpointTable(Breakpoint{Name: "", MinWidth: 100})
		assert.Error(t, err)
	})

	t.Run("rejects a non-terminal base entry", func(t *testing.T) {
		_, err := NewBreakpointTable(
			Breakpoint{Name: BaseBreakpoint, MinWidth: 100},
			Breakpoint{Name: "sm", MinWidth: 50},
		)
		assert.Error(t, err)
	})

	t.Run("rejects negative widths", func(t *testing.T) {
		_, err := NewBreakpointTable(Breakpoint{Name: "neg", MinWidth: -5})
		assert.Error(t, err)
	})
}

func TestResolveIsTotal(t *testing.T) {
	table := DefaultBreakpoints()
	for width := -10; width <= 300; width += 7 {
		name := table.Resolve(width)
		assert.NotEmpty(t, name, "width %d must resolve", width)
		assert.GreaterOrEqual(t, table.indexOf(name), 0)
	}
}
