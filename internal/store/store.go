package store

import (
	"sync"

	"github.com/lumierefi/store_api/internal/models"
)

// Store owns one session's state. All mutation goes through Dispatch,
// which serializes reducer applications under a mutex so no two run
// concurrently; nothing else may write the state.
type Store struct {
	mu    sync.Mutex
	state State
	dirty bool
}

// New creates a store hydrated from a persisted snapshot. A nil snapshot
// starts from empty defaults.
func New(snap *models.Snapshot) *Store {
	return &Store{state: fromSnapshot(snap)}
}

// Dispatch applies an action and returns the resulting state. It never
// fails. Actions touching the durable subset mark the store dirty for the
// persistence layer.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, a)
	if a.Type.persistent() {
		s.dirty = true
	}
	return s.state
}

// State returns the current state value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot extracts the durable subset with deep-copied maps, so the
// caller can serialize it without racing later dispatches.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotOf(s.state)
}

// FlushSnapshot atomically reads the snapshot and clears the dirty flag.
// The second return is false when nothing changed since the last flush.
func (s *Store) FlushSnapshot() (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return models.Snapshot{}, false
	}
	s.dirty = false
	return snapshotOf(s.state), true
}

func snapshotOf(st State) models.Snapshot {
	snap := models.Snapshot{
		Cart:      make(map[string]int, len(st.Cart)),
		Favorites: make(map[string]bool, len(st.Favorites)),
	}
	for id, qty := range st.Cart {
		snap.Cart[id] = qty
	}
	for id := range st.Favorites {
		snap.Favorites[id] = true
	}
	if st.User != nil {
		u := *st.User
		snap.User = &u
	}
	return snap
}
