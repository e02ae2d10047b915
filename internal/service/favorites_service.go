package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/lumierefi/store_api/internal/store"
)

// FavoriteStore is the favorites surface of the remote store. Upsert must
// be idempotent; Delete of an absent row is a no-op.
type FavoriteStore interface {
	ListForUser(ctx context.Context, userID string) ([]string, error)
	Upsert(ctx context.Context, userID, productID string) error
	Delete(ctx context.Context, userID, productID string) error
}

// Toast copy for favorite outcomes.
const (
	msgFavSaved   = "Saved to favorites."
	msgFavRemoved = "Removed from favorites."
	msgFavFailed  = "Could not update favorites. Try again."
)

// FavoritesService keeps a session's local favorites and the remote store
// eventually consistent: optimistic toggles with compensating rollback,
// and a merge-push-then-pull-replace reconciliation on sign-in.
type FavoritesService struct {
	favorites FavoriteStore
}

// NewFavoritesService constructs a FavoritesService.
func NewFavoritesService(favorites FavoriteStore) *FavoritesService {
	return &FavoritesService{favorites: favorites}
}

// Toggle flips a favorite optimistically: local state changes first, then
// the remote call is attempted for authenticated users. On remote failure
// the local flip is inverted and a failure notice is shown. Returns the
// final favorite status and resulting state.
func (s *FavoritesService) Toggle(ctx context.Context, st *store.Store, productID string) (bool, store.State) {
	wasFav := st.State().Favorites[productID]
	next := st.Dispatch(store.FavToggle(productID))

	user := next.User
	if user == nil {
		// Guests keep favorites locally only.
		return !wasFav, next
	}

	var err error
	if wasFav {
		err = s.favorites.Delete(ctx, user.ID, productID)
	} else {
		err = s.favorites.Upsert(ctx, user.ID, productID)
	}
	if err != nil {
		log.Warn().Err(err).Str("product_id", productID).Str("user_id", user.ID).
			Msg("remote favorite update failed, rolling back")
		st.Dispatch(store.FavToggle(productID))
		next = st.Dispatch(store.ToastShow(msgFavFailed))
		return wasFav, next
	}

	if wasFav {
		next = st.Dispatch(store.ToastShow(msgFavRemoved))
	} else {
		next = st.Dispatch(store.ToastShow(msgFavSaved))
	}
	return !wasFav, next
}

// Reconcile merges local favorites into the remote store and returns the
// authoritative remote set: every local id is pushed (idempotent upsert),
// then the remote list is pulled. The remote store is the source of truth
// after the merge-push.
func (s *FavoritesService) Reconcile(ctx context.Context, userID string, local map[string]bool) (map[string]bool, error) {
	for id := range local {
		if err := s.favorites.Upsert(ctx, userID, id); err != nil {
			return nil, err
		}
	}

	ids, err := s.favorites.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]bool, len(ids))
	for _, id := range ids {
		merged[id] = true
	}
	return merged, nil
}

// SyncOnSignIn runs reconciliation for the store's signed-in user and
// replaces local favorites wholesale with the merged remote set. A failed
// reconciliation leaves local favorites untouched.
func (s *FavoritesService) SyncOnSignIn(ctx context.Context, st *store.Store) error {
	state := st.State()
	if state.User == nil {
		return nil
	}
	merged, err := s.Reconcile(ctx, state.User.ID, state.Favorites)
	if err != nil {
		log.Warn().Err(err).Str("user_id", state.User.ID).Msg("favorites reconciliation failed")
		return err
	}
	st.Dispatch(store.FavReplace(merged))
	return nil
}
