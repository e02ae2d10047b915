package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// CartHandler exposes the session cart. Every mutation is a dispatched
// action; the response always carries the resulting cart view so the
// client never has to refetch.
type CartHandler struct {
	stores  *store.Manager
	catalog *catalog.Catalog
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(stores *store.Manager, cat *catalog.Catalog) *CartHandler {
	return &CartHandler{stores: stores, catalog: cat}
}

// GetCart returns the session cart with derived totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	st := sessionStore(c, h.stores)
	utils.Success(c, 200, "Cart retrieved successfully", cartView(st.State(), h.catalog))
}

// AddItem adds a quantity of a product, saturating at the cart maximum.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Qty       int    `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if _, ok := h.catalog.Find(req.ProductID); !ok {
		utils.Error(c, 404, "UNKNOWN_PRODUCT", "Product not found")
		return
	}

	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.CartAdd(req.ProductID, req.Qty))
	h.stores.Persist(c.Request.Context(), key)

	utils.Success(c, 200, "Added to cart", cartView(state, h.catalog))
}

// SetQty sets an absolute quantity for a cart entry, clamped to bounds.
func (h *CartHandler) SetQty(c *gin.Context) {
	var req struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.CartSetQty(c.Param("productId"), req.Qty))
	h.stores.Persist(c.Request.Context(), key)

	utils.Success(c, 200, "Cart updated", cartView(state, h.catalog))
}

// RemoveItem deletes a cart entry; removing an absent entry is a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.CartRemove(c.Param("productId")))
	h.stores.Persist(c.Request.Context(), key)

	utils.Success(c, 200, "Cart updated", cartView(state, h.catalog))
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.CartClear())
	h.stores.Persist(c.Request.Context(), key)

	utils.Success(c, 200, "Cart cleared", cartView(state, h.catalog))
}

// SetDrawer opens or closes the cart drawer. UI-only state; no snapshot
// write is triggered.
func (h *CartHandler) SetDrawer(c *gin.Context) {
	var req struct {
		Open *bool `json:"open" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.CartOpen(*req.Open))
	utils.Success(c, 200, "Cart drawer updated", cartView(state, h.catalog))
}
