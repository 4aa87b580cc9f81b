package card

import (
	"encoding/json"
	"fmt"
	"time"

	"gridboard/config"
	"gridboard/log"
)

// CardState is the persisted UI state of one card. It lives in the app
// state file, not the deck: the deck describes content, state describes
// what this user did with it.
type CardState struct {
	// Dismissed cards are excluded from packing until restored.
	Dismissed bool `json:"dismissed"`
	// DismissedAt records when the card was dismissed.
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
	// Pinned cards pack before everything else.
	Pinned bool `json:"pinned"`
}

// Storage handles saving and loading card state using the state interface
type Storage struct {
	state config.CardStateStorage
}

// NewStorage creates a new storage instance
func NewStorage(state config.CardStateStorage) *Storage {
	return &Storage{state: state}
}

// SaveStates saves card states to disk. Zero-value states are elided so the
// state file only records cards the user actually touched.
func (s *Storage) SaveStates(states map[string]CardState) error {
	trimmed := make(map[string]CardState, len(states))
	for id, st := range states {
		if st == (CardState{}) {
			continue
		}
		trimmed[id] = st
	}

	jsonData, err := json.Marshal(trimmed)
	if err != nil {
		return fmt.Errorf("failed to marshal card states: %w", err)
	}

	return s.state.SaveCardStates(jsonData)
}

// LoadStates loads card states from disk. A damaged state file yields an
// empty map rather than an error; losing dismissals beats losing the board.
func (s *Storage) LoadStates() map[string]CardState {
	jsonData := s.state.GetCardStates()
	if len(jsonData) == 0 {
		return make(map[string]CardState)
	}

	var states map[string]CardState
	if err := json.Unmarshal(jsonData, &states); err != nil {
		log.ErrorLog.Printf("failed to parse card states, starting fresh: %v", err)
		return make(map[string]CardState)
	}
	if states == nil {
		states = make(map[string]CardState)
	}
	return states
}

// DeleteAll removes all stored card state.
func (s *Storage) DeleteAll() error {
	return s.state.DeleteAllCardStates()
}
