package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/store"
)

// fakeFavoriteStore is an in-memory FavoriteStore with switchable failure.
type fakeFavoriteStore struct {
	mu   sync.Mutex
	rows map[string]map[string]bool
	fail error
}

func newFakeFavoriteStore() *fakeFavoriteStore {
	return &fakeFavoriteStore{rows: map[string]map[string]bool{}}
}

func (f *fakeFavoriteStore) ListForUser(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	var ids []string
	for id := range f.rows[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeFavoriteStore) Upsert(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	if f.rows[userID] == nil {
		f.rows[userID] = map[string]bool{}
	}
	f.rows[userID][productID] = true
	return nil
}

func (f *fakeFavoriteStore) Delete(_ context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	delete(f.rows[userID], productID)
	return nil
}

func signedInStore(userID string) *store.Store {
	st := store.New(nil)
	st.Dispatch(store.AuthSet(&models.Session{ID: userID, Email: userID + "@example.fi"}))
	return st
}

func TestToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("guest toggles stay local", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		svc := NewFavoritesService(fake)
		st := store.New(nil)

		fav, state := svc.Toggle(ctx, st, "ring-1")
		assert.True(t, fav)
		assert.True(t, state.Favorites["ring-1"])
		assert.Empty(t, fake.rows)

		fav, state = svc.Toggle(ctx, st, "ring-1")
		assert.False(t, fav)
		assert.NotContains(t, state.Favorites, "ring-1")
	})

	t.Run("signed-in toggle pushes remote and shows a notice", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		svc := NewFavoritesService(fake)
		st := signedInStore("u1")

		fav, state := svc.Toggle(ctx, st, "ring-1")
		assert.True(t, fav)
		assert.True(t, fake.rows["u1"]["ring-1"])
		require.NotNil(t, state.UI.Toast)
		assert.Equal(t, "Saved to favorites.", state.UI.Toast.Message)

		fav, state = svc.Toggle(ctx, st, "ring-1")
		assert.False(t, fav)
		assert.NotContains(t, fake.rows["u1"], "ring-1")
		require.NotNil(t, state.UI.Toast)
		assert.Equal(t, "Removed from favorites.", state.UI.Toast.Message)
	})

	t.Run("remote failure rolls the flip back", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		fake.fail = errors.New("remote down")
		svc := NewFavoritesService(fake)
		st := signedInStore("u1")

		fav, state := svc.Toggle(ctx, st, "ring-1")
		assert.False(t, fav)
		assert.NotContains(t, state.Favorites, "ring-1")
		require.NotNil(t, state.UI.Toast)
		assert.Equal(t, "Could not update favorites. Try again.", state.UI.Toast.Message)
	})

	t.Run("failed un-favorite restores the favorite", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		svc := NewFavoritesService(fake)
		st := signedInStore("u1")
		svc.Toggle(ctx, st, "ring-1")

		fake.fail = errors.New("remote down")
		fav, state := svc.Toggle(ctx, st, "ring-1")
		assert.True(t, fav)
		assert.True(t, state.Favorites["ring-1"])
	})
}

func TestReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("merges local into remote and pulls the union", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		fake.rows["u1"] = map[string]bool{"remote-only": true}
		svc := NewFavoritesService(fake)

		merged, err := svc.Reconcile(ctx, "u1", map[string]bool{"local-a": true, "local-b": true})
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{
			"local-a":     true,
			"local-b":     true,
			"remote-only": true,
		}, merged)
		assert.Len(t, fake.rows["u1"], 3)
	})

	t.Run("push failure aborts", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		fake.fail = errors.New("remote down")
		svc := NewFavoritesService(fake)

		_, err := svc.Reconcile(ctx, "u1", map[string]bool{"a": true})
		assert.Error(t, err)
	})
}

func TestSyncOnSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces local favorites with the merged set", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		fake.rows["u1"] = map[string]bool{"remote-only": true}
		svc := NewFavoritesService(fake)

		st := store.New(nil)
		st.Dispatch(store.FavToggle("local-a"))
		st.Dispatch(store.AuthSet(&models.Session{ID: "u1"}))

		require.NoError(t, svc.SyncOnSignIn(ctx, st))
		assert.Equal(t, map[string]bool{
			"local-a":     true,
			"remote-only": true,
		}, st.State().Favorites)
	})

	t.Run("failure leaves local favorites untouched", func(t *testing.T) {
		fake := newFakeFavoriteStore()
		fake.fail = errors.New("remote down")
		svc := NewFavoritesService(fake)

		st := store.New(nil)
		st.Dispatch(store.FavToggle("local-a"))
		st.Dispatch(store.AuthSet(&models.Session{ID: "u1"}))

		assert.Error(t, svc.SyncOnSignIn(ctx, st))
		assert.Equal(t, map[string]bool{"local-a": true}, st.State().Favorites)
	})

	t.Run("no user is a no-op", func(t *testing.T) {
		svc := NewFavoritesService(newFakeFavoriteStore())
		st := store.New(nil)
		assert.NoError(t, svc.SyncOnSignIn(ctx, st))
	})
}
