package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumierefi/store_api/internal/models"
)

func TestCartAdd(t *testing.T) {
	t.Run("adds and accumulates", func(t *testing.T) {
		st := reduce(emptyState(), CartAdd("ring-1", 2))
		st = reduce(st, CartAdd("ring-1", 3))
		assert.Equal(t, 5, st.Cart["ring-1"])
	})

	t.Run("saturates at the maximum", func(t *testing.T) {
		st := reduce(emptyState(), CartAdd("ring-1", 98))
		st = reduce(st, CartAdd("ring-1", 5))
		assert.Equal(t, QtyMax, st.Cart["ring-1"])
	})

	t.Run("clamps a non-positive increment to one", func(t *testing.T) {
		st := reduce(emptyState(), CartAdd("ring-1", 0))
		assert.Equal(t, 1, st.Cart["ring-1"])
		st = reduce(emptyState(), CartAdd("ring-1", -7))
		assert.Equal(t, 1, st.Cart["ring-1"])
	})

	t.Run("clamps an oversized increment", func(t *testing.T) {
		st := reduce(emptyState(), CartAdd("ring-1", 500))
		assert.Equal(t, QtyMax, st.Cart["ring-1"])
	})
}

func TestCartSetQty(t *testing.T) {
	st := reduce(emptyState(), CartAdd("ring-1", 5))

	t.Run("sets an absolute quantity", func(t *testing.T) {
		next := reduce(st, CartSetQty("ring-1", 7))
		assert.Equal(t, 7, next.Cart["ring-1"])
	})

	t.Run("zero clamps to one, not removal", func(t *testing.T) {
		next := reduce(st, CartSetQty("ring-1", 0))
		assert.Equal(t, 1, next.Cart["ring-1"])
	})

	t.Run("clamps above the maximum", func(t *testing.T) {
		next := reduce(st, CartSetQty("ring-1", 1000))
		assert.Equal(t, QtyMax, next.Cart["ring-1"])
	})

	t.Run("creates the entry when absent", func(t *testing.T) {
		next := reduce(emptyState(), CartSetQty("new-id", 3))
		assert.Equal(t, 3, next.Cart["new-id"])
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	st := reduce(emptyState(), CartAdd("a", 1))
	st = reduce(st, CartAdd("b", 2))

	t.Run("remove deletes only its entry", func(t *testing.T) {
		next := reduce(st, CartRemove("a"))
		assert.NotContains(t, next.Cart, "a")
		assert.Equal(t, 2, next.Cart["b"])
	})

	t.Run("removing an absent entry is a no-op", func(t *testing.T) {
		next := reduce(st, CartRemove("zzz"))
		assert.Equal(t, st.Cart, next.Cart)
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		next := reduce(st, CartClear())
		assert.Empty(t, next.Cart)
	})
}

func TestFavorites(t *testing.T) {
	t.Run("toggle is an involution", func(t *testing.T) {
		st := reduce(emptyState(), FavToggle("neck-1"))
		assert.True(t, st.Favorites["neck-1"])
		st = reduce(st, FavToggle("neck-1"))
		assert.NotContains(t, st.Favorites, "neck-1")
	})

	t.Run("replace swaps the whole set and drops false marks", func(t *testing.T) {
		st := reduce(emptyState(), FavToggle("old"))
		st = reduce(st, FavReplace(map[string]bool{"a": true, "b": true, "c": false}))
		assert.Equal(t, map[string]bool{"a": true, "b": true}, st.Favorites)
	})

	t.Run("replace with nil clears", func(t *testing.T) {
		st := reduce(emptyState(), FavToggle("old"))
		st = reduce(st, FavReplace(nil))
		assert.Empty(t, st.Favorites)
	})
}

func TestAuth(t *testing.T) {
	user := &models.Session{ID: "u1", Email: "a@b.fi", Name: "A"}

	t.Run("set installs a copy of the user", func(t *testing.T) {
		st := reduce(emptyState(), AuthSet(user))
		require.NotNil(t, st.User)
		assert.Equal(t, "u1", st.User.ID)
		assert.NotSame(t, user, st.User)
	})

	t.Run("sign out clears the user but keeps cart and favorites", func(t *testing.T) {
		st := reduce(emptyState(), CartAdd("ring-1", 2))
		st = reduce(st, FavToggle("neck-1"))
		st = reduce(st, AuthSet(user))
		st = reduce(st, AuthSignOut())
		assert.Nil(t, st.User)
		assert.Equal(t, 2, st.Cart["ring-1"])
		assert.True(t, st.Favorites["neck-1"])
	})
}

func TestToast(t *testing.T) {
	t.Run("identical messages get distinct ids", func(t *testing.T) {
		st := reduce(emptyState(), ToastShow("Saved."))
		first := st.UI.Toast
		require.NotNil(t, first)

		st = reduce(st, ToastShow("Saved."))
		second := st.UI.Toast
		require.NotNil(t, second)
		assert.Equal(t, first.Message, second.Message)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("clear dismisses", func(t *testing.T) {
		st := reduce(emptyState(), ToastShow("Saved."))
		st = reduce(st, ToastClear())
		assert.Nil(t, st.UI.Toast)
	})
}

func TestUIActions(t *testing.T) {
	st := reduce(emptyState(), CartOpen(true))
	assert.True(t, st.UI.CartOpen)
	st = reduce(st, ProductOpen("ring-1"))
	assert.Equal(t, "ring-1", st.UI.ActiveProductID)
	st = reduce(st, ProductOpen(""))
	assert.Empty(t, st.UI.ActiveProductID)
	st = reduce(st, CartOpen(false))
	assert.False(t, st.UI.CartOpen)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := reduce(emptyState(), CartAdd("a", 2))
	base = reduce(base, FavToggle("x"))
	cartBefore := map[string]int{"a": 2}
	favsBefore := map[string]bool{"x": true}

	_ = reduce(base, CartAdd("a", 5))
	_ = reduce(base, CartSetQty("a", 9))
	_ = reduce(base, CartRemove("a"))
	_ = reduce(base, FavToggle("x"))
	_ = reduce(base, FavReplace(map[string]bool{"y": true}))

	assert.Equal(t, cartBefore, base.Cart)
	assert.Equal(t, favsBefore, base.Favorites)
}

func TestUnknownActionIsIdentity(t *testing.T) {
	base := reduce(emptyState(), CartAdd("a", 2))
	next := reduce(base, Action{Type: ActionType("bogus/type")})
	assert.Equal(t, base, next)
}
