package card

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStateStorage implements config.CardStateStorage in memory.
type fakeStateStorage struct {
	data json.RawMessage
}

func (f *fakeStateStorage) SaveCardStates(cardsJSON json.RawMessage) error {
	f.data = cardsJSON
	return nil
}

func (f *fakeStateStorage) GetCardStates() json.RawMessage {
	return f.data
}

func (f *fakeStateStorage) DeleteAllCardStates() error {
	f.data = json.RawMessage("{}")
	return nil
}

func TestStorageRoundTrip(t *testing.T) {
	store := NewStorage(&fakeStateStorage{})

	now := time.Now().Truncate(time.Second)
	states := map[string]CardState{
		"cpu":   {Pinned: true},
		"mem":   {Dismissed: true, DismissedAt: &now},
		"notes": {}, // untouched, should be elided
	}

	require.NoError(t, store.SaveStates(states))

	loaded := store.LoadStates()
	assert.True(t, loaded["cpu"].Pinned)
	assert.True(t, loaded["mem"].Dismissed)
	require.NotNil(t, loaded["mem"].DismissedAt)
	assert.True(t, now.Equal(*loaded["mem"].DismissedAt))

	_, ok := loaded["notes"]
	assert.False(t, ok, "zero-value states are not persisted")
}

func TestStorageEmptyState(t *testing.T) {
	store := NewStorage(&fakeStateStorage{})

	loaded := store.LoadStates()
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestStorageCorruptState(t *testing.T) {
	store := NewStorage(&fakeStateStorage{data: json.RawMessage("not json")})

	loaded := store.LoadStates()
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded, "corrupt state falls back to empty rather than failing")
}

func TestStorageDeleteAll(t *testing.T) {
	store := NewStorage(&fakeStateStorage{})

	require.NoError(t, store.SaveStates(map[string]CardState{"cpu": {Pinned: true}}))
	require.NoError(t, store.DeleteAll())
	assert.Empty(t, store.LoadStates())
}
