package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/service"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// OrderHandler handles checkout and order history. All routes require a
// signed-in session.
type OrderHandler struct {
	checkout *service.CheckoutService
	stores   *store.Manager
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(checkout *service.CheckoutService, stores *store.Manager) *OrderHandler {
	return &OrderHandler{checkout: checkout, stores: stores}
}

// PlaceOrder converts the account cart into a persisted order. The cart
// is cleared only after the order and its items have committed.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		Email           string                 `json:"email" binding:"required,email"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
		ShippingMethod  string                 `json:"shippingMethod"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)

	order, err := h.checkout.PlaceOrder(c.Request.Context(), st, service.PlaceOrderInput{
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		ShippingMethod:  req.ShippingMethod,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		switch err {
		case utils.ErrAuthRequired:
			utils.Error(c, 401, "AUTH_REQUIRED", "Sign in to place an order")
		case utils.ErrEmptyCart:
			utils.Error(c, 400, "EMPTY_CART", "Your cart is empty")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Could not place order. Try again.")
		}
		return
	}
	h.stores.Persist(c.Request.Context(), key)

	utils.Success(c, 201, "Order placed", gin.H{"order": order})
}

// ListOrders returns the account's order history, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	st := sessionStore(c, h.stores)

	orders, err := h.checkout.ListOrders(c.Request.Context(), st)
	if err != nil {
		if err == utils.ErrAuthRequired {
			utils.Error(c, 401, "AUTH_REQUIRED", "Sign in to view orders")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list orders")
		return
	}
	utils.Success(c, 200, "Orders retrieved successfully", gin.H{"orders": orders})
}
