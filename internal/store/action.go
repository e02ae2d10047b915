package store

import "github.com/lumierefi/store_api/internal/models"

// ActionType names every state transition the reducer understands.
type ActionType string

const (
	ActionCartOpen    ActionType = "cart/open"
	ActionProductOpen ActionType = "product/open"
	ActionToastShow   ActionType = "toast/show"
	ActionToastClear  ActionType = "toast/clear"
	ActionCartAdd     ActionType = "cart/add"
	ActionCartSetQty  ActionType = "cart/setQty"
	ActionCartRemove  ActionType = "cart/remove"
	ActionCartClear   ActionType = "cart/clear"
	ActionFavToggle   ActionType = "fav/toggle"
	ActionFavReplace  ActionType = "fav/replace"
	ActionAuthSet     ActionType = "auth/set"
	ActionAuthSignOut ActionType = "auth/signOut"
)

// Action is a dispatched state transition. Only the fields relevant to its
// Type are read; everything else is ignored. Dispatching is total: no
// action can fail, malformed input is clamped or dropped.
type Action struct {
	Type      ActionType
	ID        string
	Qty       int
	Open      bool
	Message   string
	User      *models.Session
	Favorites map[string]bool
}

// persistent reports whether the action touches the durable snapshot
// subset (cart, favorites, user). UI-only actions never trigger a write.
func (t ActionType) persistent() bool {
	switch t {
	case ActionCartAdd, ActionCartSetQty, ActionCartRemove, ActionCartClear,
		ActionFavToggle, ActionFavReplace, ActionAuthSet, ActionAuthSignOut:
		return true
	}
	return false
}

// CartOpen opens or closes the cart drawer.
func CartOpen(open bool) Action {
	return Action{Type: ActionCartOpen, Open: open}
}

// ProductOpen sets the active product detail, empty id to close.
func ProductOpen(id string) Action {
	return Action{Type: ActionProductOpen, ID: id}
}

// CartAdd adds qty of a product to the cart, saturating at QtyMax.
func CartAdd(id string, qty int) Action {
	return Action{Type: ActionCartAdd, ID: id, Qty: qty}
}

// CartSetQty sets an absolute clamped quantity.
func CartSetQty(id string, qty int) Action {
	return Action{Type: ActionCartSetQty, ID: id, Qty: qty}
}

// CartRemove deletes a cart entry; a no-op when absent.
func CartRemove(id string) Action {
	return Action{Type: ActionCartRemove, ID: id}
}

// CartClear empties the cart.
func CartClear() Action {
	return Action{Type: ActionCartClear}
}

// FavToggle flips a product's favorite membership.
func FavToggle(id string) Action {
	return Action{Type: ActionFavToggle, ID: id}
}

// FavReplace swaps in a whole favorites set, used after remote
// reconciliation.
func FavReplace(favorites map[string]bool) Action {
	return Action{Type: ActionFavReplace, Favorites: favorites}
}

// AuthSet installs or clears (nil) the session user.
func AuthSet(user *models.Session) Action {
	return Action{Type: ActionAuthSet, User: user}
}

// AuthSignOut clears the session user.
func AuthSignOut() Action {
	return Action{Type: ActionAuthSignOut}
}

// ToastShow emits a transient notice with a fresh unique id.
func ToastShow(message string) Action {
	return Action{Type: ActionToastShow, Message: message}
}

// ToastClear dismisses the current notice.
func ToastClear() Action {
	return Action{Type: ActionToastClear}
}
