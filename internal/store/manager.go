package store

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lumierefi/store_api/internal/models"
)

// SnapshotStore is the durable backing for session snapshots. Load returns
// (nil, nil) when nothing usable is persisted under the key; it must not
// surface parse or shape failures as errors the store has to care about.
type SnapshotStore interface {
	Load(ctx context.Context, key string) (*models.Snapshot, error)
	Save(ctx context.Context, key string, snap models.Snapshot) error
}

// sessionIdleTTL is how long a clean, untouched store stays resident
// before the sweep drops it. Evicted sessions rehydrate from their
// snapshot on next access.
const sessionIdleTTL = 30 * time.Minute

type entry struct {
	st         *Store
	lastAccess time.Time
}

// Manager hands out one Store per session key, hydrating each from the
// snapshot store on first access and evicting idle clean stores during
// the PersistDirty sweep. Persistence failures are swallowed: the worst
// case is losing the latest unsynced mutation, never a request failure.
type Manager struct {
	mu        sync.Mutex
	snapshots SnapshotStore
	stores    map[string]*entry
}

// NewManager constructs a Manager over the given snapshot store.
func NewManager(snapshots SnapshotStore) *Manager {
	return &Manager{
		snapshots: snapshots,
		stores:    make(map[string]*entry),
	}
}

// Get returns the session's store, creating and hydrating it if needed.
// A failed load behaves exactly like nothing persisted.
func (m *Manager) Get(ctx context.Context, key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.stores[key]; ok {
		e.lastAccess = time.Now()
		return e.st
	}

	snap, err := m.snapshots.Load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("session", key).Msg("snapshot load failed, starting empty")
		snap = nil
	}
	st := New(snap)
	m.stores[key] = &entry{st: st, lastAccess: time.Now()}
	return st
}

// Persist writes the session's snapshot if it is dirty. Errors are logged
// and swallowed; the dirty flag stays cleared so rapid mutations coalesce
// into the next write (last write wins).
func (m *Manager) Persist(ctx context.Context, key string) {
	m.mu.Lock()
	e, ok := m.stores[key]
	m.mu.Unlock()
	if !ok {
		return
	}

	snap, dirty := e.st.FlushSnapshot()
	if !dirty {
		return
	}
	if err := m.snapshots.Save(ctx, key, snap); err != nil {
		log.Warn().Err(err).Str("session", key).Msg("snapshot save failed")
	}
}

// PersistDirty sweeps every managed store, writes the dirty ones and
// drops clean stores idle past sessionIdleTTL. It is the write-behind
// backstop run by the snapshot worker. Returns the number of snapshots
// written.
func (m *Manager) PersistDirty(ctx context.Context) int {
	m.mu.Lock()
	keys := make([]string, 0, len(m.stores))
	for k := range m.stores {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	written := 0
	now := time.Now()
	for _, k := range keys {
		m.mu.Lock()
		e, ok := m.stores[k]
		if !ok {
			m.mu.Unlock()
			continue
		}
		snap, dirty := e.st.FlushSnapshot()
		if !dirty && now.Sub(e.lastAccess) > sessionIdleTTL {
			delete(m.stores, k)
		}
		m.mu.Unlock()
		if !dirty {
			continue
		}
		if err := m.snapshots.Save(ctx, k, snap); err != nil {
			log.Warn().Err(err).Str("session", k).Msg("snapshot save failed")
			continue
		}
		written++
	}
	return written
}
