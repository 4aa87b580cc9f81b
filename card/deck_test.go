package card

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridboard/grid"
)

func writeDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleDeck = `
title: Ops overview
gap: 2
columns:
  base: 2
  standard: 4
cards:
  - id: cpu
    title: CPU load
    priority: 0
    tags: [metrics, host]
    sizes:
      base: {cols: 2, rows: 1}
      wide: {cols: 2, rows: 2}
  - id: mem
    title: Memory
    body: |
      Resident set and page cache.
    sizes:
      base: {cols: 1, rows: 1}
  - id: notes
    sizes:
      base: {cols: 1, rows: 1}
`

func TestLoadDeck(t *testing.T) {
	deck, err := LoadDeck(writeDeck(t, sampleDeck))
	require.NoError(t, err)

	assert.Equal(t, "Ops overview", deck.Title)
	require.NotNil(t, deck.Gap)
	assert.Equal(t, 2, *deck.Gap)
	require.Len(t, deck.Cards, 3)

	cpu := deck.Lookup("cpu")
	require.NotNil(t, cpu)
	assert.Equal(t, grid.Size{Cols: 2, Rows: 1}, cpu.Sizes["base"])
	assert.Equal(t, grid.Size{Cols: 2, Rows: 2}, cpu.Sizes["wide"])
	require.NotNil(t, cpu.Priority)
	assert.Equal(t, 0, *cpu.Priority)

	mem := deck.Lookup("mem")
	require.NotNil(t, mem)
	assert.Nil(t, mem.Priority)
	assert.Contains(t, mem.Body, "page cache")

	notes := deck.Lookup("notes")
	require.NotNil(t, notes)
	assert.Equal(t, "notes", notes.DisplayTitle(), "untitled card falls back to id")
	assert.False(t, notes.Updated.IsZero(), "cards inherit the file timestamp")

	assert.Nil(t, deck.Lookup("missing"))
}

func TestLoadDeckErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid yaml",
			content: "cards: [}",
		},
		{
			name: "missing id",
			content: `
cards:
  - title: No id here
`,
		},
		{
			name: "duplicate ids",
			content: `
cards:
  - id: a
  - id: a
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDeck(writeDeck(t, tt.content))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDeck(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadDeckRepairsMissingSizes(t *testing.T) {
	deck, err := LoadDeck(writeDeck(t, "cards:\n  - id: bare\n"))
	require.NoError(t, err)

	bare := deck.Lookup("bare")
	require.NotNil(t, bare)
	assert.Equal(t, grid.Size{Cols: 1, Rows: 1}, bare.Sizes[grid.BaseBreakpoint])
}

func TestVisible(t *testing.T) {
	deck, err := LoadDeck(writeDeck(t, sampleDeck))
	require.NoError(t, err)

	t.Run("all cards by default", func(t *testing.T) {
		assert.Len(t, deck.Visible(nil, ""), 3)
	})

	t.Run("dismissed cards are excluded", func(t *testing.T) {
		states := map[string]CardState{"mem": {Dismissed: true}}
		visible := deck.Visible(states, "")
		require.Len(t, visible, 2)
		for _, c := range visible {
			assert.NotEqual(t, "mem", c.ID)
		}
	})

	t.Run("filter matches title case-insensitively", func(t *testing.T) {
		visible := deck.Visible(nil, "memory")
		require.Len(t, visible, 1)
		assert.Equal(t, "mem", visible[0].ID)
	})

	t.Run("filter matches tags", func(t *testing.T) {
		visible := deck.Visible(nil, "metrics")
		require.Len(t, visible, 1)
		assert.Equal(t, "cpu", visible[0].ID)
	})
}

func TestItems(t *testing.T) {
	deck, err := LoadDeck(writeDeck(t, sampleDeck))
	require.NoError(t, err)

	items := deck.Items(nil, "")
	require.Len(t, items, 3)
	assert.Equal(t, "cpu", items[0].ID)
	require.NotNil(t, items[0].Priority)
	assert.Equal(t, 0, *items[0].Priority)
	assert.Nil(t, items[1].Priority)

	t.Run("pinned card outranks deck priorities", func(t *testing.T) {
		states := map[string]CardState{"notes": {Pinned: true}}
		items := deck.Items(states, "")
		require.Len(t, items, 3)

		var notes grid.Item
		for _, it := range items {
			if it.ID == "notes" {
				notes = it
			}
		}
		require.NotNil(t, notes.Priority)
		assert.Less(t, *notes.Priority, 0)
	})
}

func TestDeckColumnTable(t *testing.T) {
	deck, err := LoadDeck(writeDeck(t, sampleDeck))
	require.NoError(t, err)

	defaults := grid.ColumnTable{"base": 1, "full": 6}
	merged := deck.ColumnTable(defaults)
	assert.Equal(t, 2, merged["base"], "deck override wins")
	assert.Equal(t, 4, merged["standard"])
	assert.Equal(t, 6, merged["full"], "defaults survive for other tiers")

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		d := &Deck{}
		assert.Equal(t, defaults, d.ColumnTable(defaults))
	})
}

func TestGapOrDefault(t *testing.T) {
	gap := 3
	assert.Equal(t, 3, (&Deck{Gap: &gap}).GapOrDefault(1))
	assert.Equal(t, 1, (&Deck{}).GapOrDefault(1))

	negative := -2
	assert.Equal(t, 1, (&Deck{Gap: &negative}).GapOrDefault(1))
}
