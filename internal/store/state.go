package store

import (
	"time"

	"github.com/lumierefi/store_api/internal/models"
)

// Cart quantity bounds. Removal deletes the key; a stored quantity is
// always within [QtyMin, QtyMax].
const (
	QtyMin = 1
	QtyMax = 99
)

// Toast is a short-lived user notice. ID is unique per emission, even for
// identical messages, so a consumer can key replace animations off it.
type Toast struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// UIState is the ephemeral, never-persisted part of session state.
type UIState struct {
	CartOpen        bool   `json:"cartOpen"`
	ActiveProductID string `json:"activeProductId,omitempty"`
	Toast           *Toast `json:"toast,omitempty"`
}

// State is one session's application state. It is treated as an immutable
// value: the reducer returns a fresh State and never writes through the
// maps of its input, so a State handed out of the store can be read
// without further locking.
type State struct {
	Cart      map[string]int  `json:"cart"`
	Favorites map[string]bool `json:"favorites"`
	User      *models.Session `json:"user"`
	UI        UIState         `json:"ui"`
}

func emptyState() State {
	return State{
		Cart:      map[string]int{},
		Favorites: map[string]bool{},
	}
}

// fromSnapshot merges a persisted snapshot with empty UI state.
func fromSnapshot(snap *models.Snapshot) State {
	st := emptyState()
	if snap == nil {
		return st
	}
	for id, qty := range snap.Cart {
		st.Cart[id] = clampQty(qty)
	}
	for id, marked := range snap.Favorites {
		if marked {
			st.Favorites[id] = true
		}
	}
	if snap.User != nil && snap.User.ID != "" {
		u := *snap.User
		st.User = &u
	}
	return st
}

// CartCount is the sum of all cart quantities.
func (s State) CartCount() int {
	n := 0
	for _, qty := range s.Cart {
		n += qty
	}
	return n
}

// CartSubtotalCents totals the cart against the catalog via find. An entry
// whose product is unknown contributes zero rather than failing.
func (s State) CartSubtotalCents(find func(id string) (models.Product, bool)) int {
	sum := 0
	for id, qty := range s.Cart {
		if p, ok := find(id); ok {
			sum += p.PriceCents * qty
		}
	}
	return sum
}

// FavCount is the number of favorited products.
func (s State) FavCount() int {
	return len(s.Favorites)
}

func clampQty(q int) int {
	if q < QtyMin {
		return QtyMin
	}
	if q > QtyMax {
		return QtyMax
	}
	return q
}
