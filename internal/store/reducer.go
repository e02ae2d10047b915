package store

import (
	"time"

	"github.com/google/uuid"
)

// reduce applies an action and returns the next state. It is a total pure
// function: the input state is never mutated (maps are copied before
// writing) and unknown action types return the state unchanged.
func reduce(s State, a Action) State {
	switch a.Type {
	case ActionCartOpen:
		s.UI.CartOpen = a.Open
		return s

	case ActionProductOpen:
		s.UI.ActiveProductID = a.ID
		return s

	case ActionToastShow:
		s.UI.Toast = &Toast{
			ID:      uuid.NewString(),
			Message: a.Message,
			At:      time.Now(),
		}
		return s

	case ActionToastClear:
		s.UI.Toast = nil
		return s

	case ActionCartAdd:
		// The increment is clamped before adding and the sum is re-clamped,
		// so repeated adds saturate at QtyMax instead of overflowing.
		cart := copyCart(s.Cart)
		cart[a.ID] = clampQty(cart[a.ID] + clampQty(a.Qty))
		s.Cart = cart
		return s

	case ActionCartSetQty:
		cart := copyCart(s.Cart)
		cart[a.ID] = clampQty(a.Qty)
		s.Cart = cart
		return s

	case ActionCartRemove:
		if _, ok := s.Cart[a.ID]; !ok {
			return s
		}
		cart := copyCart(s.Cart)
		delete(cart, a.ID)
		s.Cart = cart
		return s

	case ActionCartClear:
		s.Cart = map[string]int{}
		return s

	case ActionFavToggle:
		favs := copyFavorites(s.Favorites)
		if favs[a.ID] {
			delete(favs, a.ID)
		} else {
			favs[a.ID] = true
		}
		s.Favorites = favs
		return s

	case ActionFavReplace:
		favs := make(map[string]bool, len(a.Favorites))
		for id, marked := range a.Favorites {
			if marked {
				favs[id] = true
			}
		}
		s.Favorites = favs
		return s

	case ActionAuthSet:
		if a.User != nil {
			u := *a.User
			s.User = &u
		} else {
			s.User = nil
		}
		return s

	case ActionAuthSignOut:
		s.User = nil
		return s

	default:
		return s
	}
}

func copyCart(m map[string]int) map[string]int {
	out := make(map[string]int, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyFavorites(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
