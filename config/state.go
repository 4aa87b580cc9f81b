package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridboard/log"
)

const StateFileName = "state.json"

// CardStateStorage handles per-card UI state operations
type CardStateStorage interface {
	// SaveCardStates saves the raw card state data
	SaveCardStates(cardsJSON json.RawMessage) error
	// GetCardStates returns the raw card state data
	GetCardStates() json.RawMessage
	// DeleteAllCardStates removes all stored card state
	DeleteAllCardStates() error
}

// AppState handles application-level state
type AppState interface {
	// GetHelpScreensSeen returns the bitmask of seen help screens
	GetHelpScreensSeen() uint32
	// SetHelpScreensSeen updates the bitmask of seen help screens
	SetHelpScreensSeen(seen uint32) error
}

// StateManager combines card state storage and app state management
type StateManager interface {
	CardStateStorage
	AppState
}

// State represents the application state that persists between sessions
type State struct {
	// HelpScreensSeen is a bitmask tracking which help screens have been shown
	HelpScreensSeen uint32 `json:"help_screens_seen"`
	// CardsData stores the serialized per-card state as raw JSON
	CardsData json.RawMessage `json:"cards"`

	// lastModTime tracks when we last read the state file (not serialized)
	lastModTime time.Time `json:"-"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{
		HelpScreensSeen: 0,
		CardsData:       json.RawMessage("{}"),
	}
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	statePath := filepath.Join(configDir, StateFileName)

	// Acquire shared lock for reading
	lock := NewFileLock(statePath)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	}

	// Get file mod time before reading
	var modTime time.Time
	if info, err := os.Stat(statePath); err == nil {
		modTime = info.ModTime()
	}

	data, readErr := os.ReadFile(statePath)

	// Release before the missing-file branch: SaveState takes the
	// exclusive lock on the same lock file, and flock locks held by one
	// process still conflict across file descriptors, so holding the
	// read lock here would block the first run forever.
	if err := lock.Unlock(); err != nil {
		log.WarningLog.Printf("failed to release read lock: %v", err)
	}

	if readErr != nil {
		if os.IsNotExist(readErr) {
			// Create and save default state if file doesn't exist
			defaultState := DefaultState()
			defaultState.lastModTime = time.Now()
			if saveErr := SaveState(defaultState); saveErr != nil {
				log.WarningLog.Printf("failed to save default state: %v", saveErr)
			}
			return defaultState
		}

		log.WarningLog.Printf("failed to get state file: %v", readErr)
		return DefaultState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}

	state.lastModTime = modTime
	return &state
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	statePath := filepath.Join(configDir, StateFileName)

	// Acquire exclusive lock for writing
	lock := NewFileLock(statePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(statePath, data, 0644); err != nil {
		return err
	}

	// Update lastModTime after successful write
	if info, err := os.Stat(statePath); err == nil {
		state.lastModTime = info.ModTime()
	}

	return nil
}

// CardStateStorage interface implementation

// SaveCardStates saves the raw card state data
func (s *State) SaveCardStates(cardsJSON json.RawMessage) error {
	s.CardsData = cardsJSON
	return SaveState(s)
}

// GetCardStates returns the raw card state data
func (s *State) GetCardStates() json.RawMessage {
	return s.CardsData
}

// DeleteAllCardStates removes all stored card state
func (s *State) DeleteAllCardStates() error {
	s.CardsData = json.RawMessage("{}")
	return SaveState(s)
}

// AppState interface implementation

// GetHelpScreensSeen returns the bitmask of seen help screens
func (s *State) GetHelpScreensSeen() uint32 {
	return s.HelpScreensSeen
}

// SetHelpScreensSeen updates the bitmask of seen help screens
func (s *State) SetHelpScreensSeen(seen uint32) error {
	s.HelpScreensSeen = seen
	return SaveState(s)
}

// State sync methods

// GetLastModTime returns the modification time when this state was last read from disk.
func (s *State) GetLastModTime() time.Time {
	return s.lastModTime
}

// GetStateModTime returns the current modification time of the state file on disk.
func GetStateModTime() (time.Time, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return time.Time{}, err
	}

	statePath := filepath.Join(configDir, StateFileName)
	info, err := os.Stat(statePath)
	if err != nil {
		return time.Time{}, err
	}

	return info.ModTime(), nil
}

// NeedsRefresh checks if the state file has been modified since the given time.
// Returns true if the file has been modified and should be refreshed.
func NeedsRefresh(since time.Time) bool {
	modTime, err := GetStateModTime()
	if err != nil {
		return false
	}
	return modTime.After(since)
}

// RefreshFromDisk reloads the state from disk if it has been modified.
// Returns true if the state was refreshed, false if no refresh was needed.
func (s *State) RefreshFromDisk() (bool, error) {
	if !NeedsRefresh(s.lastModTime) {
		return false, nil
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return false, fmt.Errorf("failed to get config directory: %w", err)
	}

	statePath := filepath.Join(configDir, StateFileName)

	// Acquire shared lock for reading
	lock := NewFileLock(statePath)
	if err := lock.RLock(); err != nil {
		return false, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer lock.Unlock()

	// Get current mod time
	info, err := os.Stat(statePath)
	if err != nil {
		return false, fmt.Errorf("failed to stat state file: %w", err)
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		return false, fmt.Errorf("failed to read state file: %w", err)
	}

	var newState State
	if err := json.Unmarshal(data, &newState); err != nil {
		return false, fmt.Errorf("failed to parse state file: %w", err)
	}

	// Update this state with the new data
	s.HelpScreensSeen = newState.HelpScreensSeen
	s.CardsData = newState.CardsData
	s.lastModTime = info.ModTime()

	return true, nil
}
