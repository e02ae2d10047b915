package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumierefi/store_api/internal/models"
)

func TestHydrationFromSnapshot(t *testing.T) {
	t.Run("nil snapshot starts empty", func(t *testing.T) {
		st := New(nil).State()
		assert.Empty(t, st.Cart)
		assert.Empty(t, st.Favorites)
		assert.Nil(t, st.User)
		assert.False(t, st.UI.CartOpen)
	})

	t.Run("out-of-range quantities are clamped on load", func(t *testing.T) {
		snap := &models.Snapshot{
			Cart:      map[string]int{"a": 500, "b": -3, "c": 7},
			Favorites: map[string]bool{"x": true, "y": false},
		}
		st := New(snap).State()
		assert.Equal(t, QtyMax, st.Cart["a"])
		assert.Equal(t, QtyMin, st.Cart["b"])
		assert.Equal(t, 7, st.Cart["c"])
		assert.Equal(t, map[string]bool{"x": true}, st.Favorites)
	})

	t.Run("a user without an id is dropped", func(t *testing.T) {
		snap := &models.Snapshot{
			Cart:      map[string]int{},
			Favorites: map[string]bool{},
			User:      &models.Session{Email: "ghost@example.fi"},
		}
		st := New(snap).State()
		assert.Nil(t, st.User)
	})
}

func TestFlushSnapshot(t *testing.T) {
	s := New(nil)

	snap, dirty := s.FlushSnapshot()
	assert.False(t, dirty)

	s.Dispatch(CartAdd("ring-1", 2))
	snap, dirty = s.FlushSnapshot()
	require.True(t, dirty)
	assert.Equal(t, 2, snap.Cart["ring-1"])

	// Flushed once; nothing new to write.
	_, dirty = s.FlushSnapshot()
	assert.False(t, dirty)

	// UI-only actions never dirty the store.
	s.Dispatch(CartOpen(true))
	s.Dispatch(ToastShow("hello"))
	_, dirty = s.FlushSnapshot()
	assert.False(t, dirty)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New(nil)
	s.Dispatch(CartAdd("a", 2))
	snap := s.Snapshot()
	snap.Cart["a"] = 50

	assert.Equal(t, 2, s.State().Cart["a"])
}

func TestDerivedValues(t *testing.T) {
	find := func(id string) (models.Product, bool) {
		if id == "known" {
			return models.Product{ID: "known", PriceCents: 12900}, true
		}
		return models.Product{}, false
	}

	s := New(nil)
	s.Dispatch(CartAdd("known", 3))
	s.Dispatch(CartAdd("ghost", 2))
	st := s.Dispatch(FavToggle("known"))

	assert.Equal(t, 5, st.CartCount())
	assert.Equal(t, 3*12900, st.CartSubtotalCents(find))
	assert.Equal(t, 1, st.FavCount())
}

func TestDispatchSerializes(t *testing.T) {
	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(CartAdd("ring-1", 1))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.State().Cart["ring-1"])
}

// fakeSnapshotStore records saves and serves canned loads.
type fakeSnapshotStore struct {
	mu      sync.Mutex
	loads   map[string]*models.Snapshot
	loadErr error
	saveErr error
	saved   map[string]models.Snapshot
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{
		loads: map[string]*models.Snapshot{},
		saved: map[string]models.Snapshot{},
	}
}

func (f *fakeSnapshotStore) Load(_ context.Context, key string) (*models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.loads[key], nil
}

func (f *fakeSnapshotStore) Save(_ context.Context, key string, snap models.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[key] = snap
	return nil
}

func TestManagerGet(t *testing.T) {
	ctx := context.Background()

	t.Run("hydrates from the snapshot store once", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		fake.loads["sess_1"] = &models.Snapshot{
			Cart:      map[string]int{"a": 2},
			Favorites: map[string]bool{},
		}
		m := NewManager(fake)

		st := m.Get(ctx, "sess_1")
		assert.Equal(t, 2, st.State().Cart["a"])

		// Same instance on repeat access.
		assert.Same(t, st, m.Get(ctx, "sess_1"))
	})

	t.Run("load failure degrades to empty state", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		fake.loadErr = errors.New("redis down")
		m := NewManager(fake)

		st := m.Get(ctx, "sess_2")
		assert.Empty(t, st.State().Cart)
	})
}

func TestManagerPersist(t *testing.T) {
	ctx := context.Background()

	t.Run("writes dirty snapshots", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		m.Get(ctx, "sess_1").Dispatch(CartAdd("a", 2))
		m.Persist(ctx, "sess_1")
		require.Contains(t, fake.saved, "sess_1")
		assert.Equal(t, 2, fake.saved["sess_1"].Cart["a"])
	})

	t.Run("clean stores are skipped", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		m.Get(ctx, "sess_1")
		m.Persist(ctx, "sess_1")
		assert.NotContains(t, fake.saved, "sess_1")
	})

	t.Run("save failure is swallowed", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		fake.saveErr = errors.New("redis down")
		m := NewManager(fake)

		m.Get(ctx, "sess_1").Dispatch(CartAdd("a", 2))
		m.Persist(ctx, "sess_1")
		assert.Empty(t, fake.saved)
	})

	t.Run("PersistDirty sweeps every dirty store", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		m.Get(ctx, "sess_1").Dispatch(CartAdd("a", 1))
		m.Get(ctx, "sess_2").Dispatch(FavToggle("x"))
		m.Get(ctx, "sess_3")

		assert.Equal(t, 2, m.PersistDirty(ctx))
		assert.Contains(t, fake.saved, "sess_1")
		assert.Contains(t, fake.saved, "sess_2")
		assert.NotContains(t, fake.saved, "sess_3")

		// Nothing left dirty after the sweep.
		assert.Equal(t, 0, m.PersistDirty(ctx))
	})
}

func TestManagerEviction(t *testing.T) {
	ctx := context.Background()

	t.Run("idle clean sessions are dropped and rehydrate", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		st := m.Get(ctx, "sess_1")
		st.Dispatch(CartAdd("a", 2))
		m.Persist(ctx, "sess_1")

		m.mu.Lock()
		m.stores["sess_1"].lastAccess = time.Now().Add(-time.Hour)
		m.mu.Unlock()

		m.PersistDirty(ctx)
		m.mu.Lock()
		_, resident := m.stores["sess_1"]
		m.mu.Unlock()
		assert.False(t, resident)

		// Next access hydrates a fresh store from the saved snapshot.
		saved := fake.saved["sess_1"]
		fake.loads["sess_1"] = &saved
		again := m.Get(ctx, "sess_1")
		assert.NotSame(t, st, again)
		assert.Equal(t, 2, again.State().Cart["a"])
	})

	t.Run("recently accessed sessions stay resident", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		st := m.Get(ctx, "sess_1")
		m.PersistDirty(ctx)
		assert.Same(t, st, m.Get(ctx, "sess_1"))
	})

	t.Run("idle dirty sessions are flushed, not lost", func(t *testing.T) {
		fake := newFakeSnapshotStore()
		m := NewManager(fake)

		m.Get(ctx, "sess_1").Dispatch(CartAdd("a", 1))
		m.mu.Lock()
		m.stores["sess_1"].lastAccess = time.Now().Add(-time.Hour)
		m.mu.Unlock()

		assert.Equal(t, 1, m.PersistDirty(ctx))
		require.Contains(t, fake.saved, "sess_1")
	})
}
