package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gridboard/grid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultDeckName, cfg.DefaultDeck)
	assert.Equal(t, 1, cfg.Gap)
	assert.Equal(t, grid.DefaultBreakpoints(), cfg.BreakpointTable())

	cols := cfg.ColumnTable()
	assert.Equal(t, 1, cols[grid.BaseBreakpoint])
	assert.Equal(t, 6, cols["full"])
}

func TestBreakpointTableFromConfig(t *testing.T) {
	cfg := &Config{
		Breakpoints: []BreakpointEntry{
			{Name: "big", MinWidth: 100},
			{Name: "small", MinWidth: 50},
		},
	}

	table := cfg.BreakpointTable()
	assert.Equal(t, "big", table.Resolve(120))
	assert.Equal(t, "small", table.Resolve(60))
	assert.Equal(t, grid.BaseBreakpoint, table.Resolve(10), "base is appended automatically")
}

func TestBreakpointTableInvalidFallsBack(t *testing.T) {
	cfg := &Config{
		Breakpoints: []BreakpointEntry{
			{Name: "small", MinWidth: 50},
			{Name: "big", MinWidth: 100}, // ascending: invalid
		},
	}

	assert.Equal(t, grid.DefaultBreakpoints(), cfg.BreakpointTable())
}

func TestResizeDebounce(t *testing.T) {
	assert.Equal(t, 80*time.Millisecond, (&Config{}).ResizeDebounce())
	assert.Equal(t, 250*time.Millisecond, (&Config{ResizeDebounceMs: 250}).ResizeDebounce())
}
