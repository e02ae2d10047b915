package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/sse"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// Checkout money constants. Flat demo VAT rate; no multi-currency.
const (
	ShippingStandardCents = 599
	ShippingExpressCents  = 1299
	taxRatePercent        = 24
)

// OrderStore is the order surface of the remote store.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) error
	ListForUser(ctx context.Context, userID string) ([]models.Order, error)
}

// ProductFinder resolves catalog products by id.
type ProductFinder interface {
	Find(id string) (models.Product, bool)
}

// PlaceOrderInput is the checkout form payload for order placement.
type PlaceOrderInput struct {
	Email           string
	ShippingAddress models.ShippingAddress
	ShippingMethod  string
	PaymentMethod   string
}

// CheckoutService turns a session cart into a persisted order.
type CheckoutService struct {
	orders  OrderStore
	catalog ProductFinder
	hub     *sse.Hub
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(orders OrderStore, catalog ProductFinder, hub *sse.Hub) *CheckoutService {
	return &CheckoutService{orders: orders, catalog: catalog, hub: hub}
}

// TaxCents computes the flat-rate tax on a subtotal, rounded half up.
func TaxCents(subtotalCents int) int {
	return (subtotalCents*taxRatePercent + 50) / 100
}

// ShippingCents maps a shipping method to its price; unknown methods fall
// back to standard.
func ShippingCents(method string) int {
	if method == models.ShippingExpress {
		return ShippingExpressCents
	}
	return ShippingStandardCents
}

// PlaceOrder writes the order and its items for the store's signed-in
// user, clears the cart, and announces the order. Cart entries referencing
// unknown products are skipped, matching the subtotal derivation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, st *store.Store, in PlaceOrderInput) (*models.Order, error) {
	state := st.State()
	if state.User == nil {
		return nil, utils.ErrAuthRequired
	}

	items := cartItems(state.Cart, s.catalog)
	if len(items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	subtotal := 0
	for _, item := range items {
		subtotal += item.UnitPriceCents * item.Qty
	}
	shipping := ShippingCents(in.ShippingMethod)
	tax := TaxCents(subtotal)

	addr, err := json.Marshal(in.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	payment := in.PaymentMethod
	if payment != models.PaymentKlarna {
		payment = models.PaymentCard
	}
	method := in.ShippingMethod
	if method != models.ShippingExpress {
		method = models.ShippingStandard
	}

	order := &models.Order{
		UserID:          state.User.ID,
		Email:           in.Email,
		ShippingAddress: addr,
		ShippingMethod:  method,
		PaymentMethod:   payment,
		SubtotalCents:   subtotal,
		ShippingCents:   shipping,
		TaxCents:        tax,
		TotalCents:      subtotal + shipping + tax,
		Status:          models.OrderStatusPlaced,
	}
	if err := s.orders.Create(ctx, order, items); err != nil {
		return nil, err
	}
	order.Items = items

	st.Dispatch(store.CartClear())
	shortID := order.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	st.Dispatch(store.ToastShow(fmt.Sprintf("Order saved ✅ (id: %s…)", shortID)))

	total := order.TotalCents
	s.hub.Broadcast(sse.StoreEvent{
		Event:      sse.EventOrderPlaced,
		UserID:     state.User.ID,
		OrderID:    order.ID,
		TotalCents: &total,
	})
	log.Info().Str("order_id", order.ID).Str("user_id", state.User.ID).
		Int("total_cents", order.TotalCents).Msg("order placed")
	return order, nil
}

// ListOrders returns the signed-in user's orders, newest first.
func (s *CheckoutService) ListOrders(ctx context.Context, st *store.Store) ([]models.Order, error) {
	state := st.State()
	if state.User == nil {
		return nil, utils.ErrAuthRequired
	}
	return s.orders.ListForUser(ctx, state.User.ID)
}

// cartItems resolves cart entries against the catalog into order lines.
// Ids are sorted so the line order is deterministic.
func cartItems(cart map[string]int, catalog ProductFinder) []models.OrderItem {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var items []models.OrderItem
	for _, id := range ids {
		p, ok := catalog.Find(id)
		if !ok {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			UnitPriceCents: p.PriceCents,
			Qty:            cart[id],
		})
	}
	return items
}
