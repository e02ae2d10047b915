package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/store"
)

type memorySnapshots struct {
	saved map[string]models.Snapshot
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{saved: make(map[string]models.Snapshot)}
}

func (m *memorySnapshots) Load(_ context.Context, key string) (*models.Snapshot, error) {
	snap, ok := m.saved[key]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (m *memorySnapshots) Save(_ context.Context, key string, snap models.Snapshot) error {
	m.saved[key] = snap
	return nil
}

func TestAdoptGuestConsumesGuestSession(t *testing.T) {
	ctx := context.Background()
	snaps := newMemorySnapshots()
	mgr := store.NewManager(snaps)
	h := &AuthHandler{stores: mgr}

	guest := mgr.Get(ctx, "sess_guest1")
	guest.Dispatch(store.CartAdd("ring-1", 2))
	guest.Dispatch(store.FavToggle("neck-1"))

	account := mgr.Get(ctx, "user:u1")
	account.Dispatch(store.AuthSet(&models.Session{ID: "u1", Email: "anna@example.fi"}))

	h.adoptGuest(ctx, "sess_guest1", account)
	assert.Equal(t, 2, account.State().Cart["ring-1"])
	assert.True(t, account.State().Favorites["neck-1"])

	// The merged guest session is emptied, in memory and durably.
	assert.Empty(t, guest.State().Cart)
	assert.Empty(t, guest.State().Favorites)
	assert.Empty(t, snaps.saved["sess_guest1"].Cart)

	// Drop a favorite while signed in, sign out, sign back in with the
	// same session header. Neither the cart quantity nor the removed
	// favorite may come back.
	account.Dispatch(store.FavToggle("neck-1"))
	account.Dispatch(store.AuthSignOut())
	account.Dispatch(store.AuthSet(&models.Session{ID: "u1", Email: "anna@example.fi"}))

	h.adoptGuest(ctx, "sess_guest1", account)
	assert.Equal(t, 2, account.State().Cart["ring-1"])
	assert.False(t, account.State().Favorites["neck-1"])
}

func TestAdoptGuestWithoutHeaderIsNoop(t *testing.T) {
	ctx := context.Background()
	mgr := store.NewManager(newMemorySnapshots())
	h := &AuthHandler{stores: mgr}

	account := mgr.Get(ctx, "user:u1")
	account.Dispatch(store.CartAdd("ring-1", 1))

	h.adoptGuest(ctx, "", account)
	assert.Equal(t, map[string]int{"ring-1": 1}, account.State().Cart)
}
