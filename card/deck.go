package card

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridboard/grid"
	"gridboard/log"
)

// Deck is a set of cards loaded from a YAML file, plus optional per-deck
// layout overrides.
type Deck struct {
	// Title is shown in the board header.
	Title string `yaml:"title"`
	// Gap overrides the configured cell gap when set.
	Gap *int `yaml:"gap"`
	// Columns overrides the configured column table when non-empty.
	Columns map[string]int `yaml:"columns"`
	// Cards in deck order. Deck order is the tiebreak for cards with
	// equal priority and area.
	Cards []Card `yaml:"cards"`

	// Path is where the deck was loaded from. Not serialized.
	Path string `yaml:"-"`
}

// LoadDeck reads and validates a deck file.
//
// Structural problems (unreadable file, invalid YAML, duplicate or missing
// ids) are errors: there is no sensible board to show. Per-card problems
// (missing sizes) are repaired with a one-cell base footprint and logged,
// so one sloppy card cannot take down the whole deck.
func LoadDeck(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	var deck Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	deck.Path = path

	seen := make(map[string]bool, len(deck.Cards))
	for i := range deck.Cards {
		c := &deck.Cards[i]
		if c.ID == "" {
			return nil, fmt.Errorf("card %d in %s has no id", i, path)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate card id %q in %s", c.ID, path)
		}
		seen[c.ID] = true

		if len(c.Sizes) == 0 {
			log.WarningLog.Printf("card %q has no sizes, defaulting to 1x1", c.ID)
			c.Sizes = map[string]grid.Size{grid.BaseBreakpoint: {Cols: 1, Rows: 1}}
		}
	}

	// Cards without a content timestamp inherit the file's.
	if info, err := os.Stat(path); err == nil {
		for i := range deck.Cards {
			if deck.Cards[i].Updated.IsZero() {
				deck.Cards[i].Updated = info.ModTime()
			}
		}
	}

	log.InfoLog.Printf("loaded deck %s with %d cards", path, len(deck.Cards))
	return &deck, nil
}

// Visible returns the cards that survive state and filter, in deck order.
// Dismissed cards are excluded before packing, not hidden after: the packer
// never sees them, so remaining cards flow into the space they free up.
func (d *Deck) Visible(states map[string]CardState, filter string) []*Card {
	visible := make([]*Card, 0, len(d.Cards))
	for i := range d.Cards {
		c := &d.Cards[i]
		if states[c.ID].Dismissed {
			continue
		}
		if !c.Matches(filter) {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// Items converts the visible cards into packer items.
func (d *Deck) Items(states map[string]CardState, filter string) []grid.Item {
	visible := d.Visible(states, filter)
	items := make([]grid.Item, len(visible))
	for i, c := range visible {
		items[i] = c.Item(states[c.ID])
	}
	return items
}

// Lookup returns the card with the given id, or nil.
func (d *Deck) Lookup(id string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// ColumnTable returns the deck's column overrides merged over the given
// defaults. Deck entries win tier by tier.
func (d *Deck) ColumnTable(defaults grid.ColumnTable) grid.ColumnTable {
	if len(d.Columns) == 0 {
		return defaults
	}
	merged := make(grid.ColumnTable, len(defaults)+len(d.Columns))
	for name, n := range defaults {
		merged[name] = n
	}
	for name, n := range d.Columns {
		merged[name] = n
	}
	return merged
}

// GapOrDefault returns the deck's gap override, or fallback.
func (d *Deck) GapOrDefault(fallback int) int {
	if d.Gap != nil && *d.Gap >= 0 {
		return *d.Gap
	}
	return fallback
}
