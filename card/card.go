// Package card defines the content cards a board displays and the deck
// files they are loaded from. A card declares what it wants to show and how
// much of the grid it wants at each breakpoint; where it actually lands is
// the packer's decision.
package card

import (
	"strings"
	"time"

	"gridboard/grid"
)

// pinnedPriority sorts pinned cards ahead of any explicit deck priority.
const pinnedPriority = -1 << 20

// Card is one entry in a deck.
type Card struct {
	// ID uniquely identifies the card within its deck and is stable
	// across re-packs and reloads.
	ID string `yaml:"id"`
	// Title is shown in the card header.
	Title string `yaml:"title"`
	// Body is free text rendered inside the card, word-wrapped to fit.
	Body string `yaml:"body"`
	// Tags are used for filtering.
	Tags []string `yaml:"tags"`
	// Priority orders packing; lower packs first. Cards without one pack
	// after all prioritized cards.
	Priority *int `yaml:"priority"`
	// Sizes maps breakpoint names to the footprint the card wants at that
	// tier. Sparse; lookup cascades toward smaller tiers.
	Sizes map[string]grid.Size `yaml:"sizes"`
	// Updated is an optional content timestamp shown on wide layouts.
	Updated time.Time `yaml:"updated"`
}

// DisplayTitle returns the title, falling back to the id for untitled cards.
func (c *Card) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

// Matches reports whether the card matches a filter query. Matching is
// case-insensitive over id, title, and tags. An empty query matches.
func (c *Card) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.ID), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Item converts the card into a packer item, applying its persisted state.
// Pinned cards jump ahead of every deck-declared priority.
func (c *Card) Item(state CardState) grid.Item {
	item := grid.Item{
		ID:       c.ID,
		Sizes:    grid.SizeSet(c.Sizes),
		Priority: c.Priority,
	}
	if state.Pinned {
		p := pinnedPriority
		if c.Priority != nil {
			p += *c.Priority
		}
		item.Priority = &p
	}
	return item
}
