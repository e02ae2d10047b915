package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// UIHandler exposes the transient UI slice of the session state: the
// active product detail and the current toast. None of it is persisted.
type UIHandler struct {
	stores  *store.Manager
	catalog *catalog.Catalog
}

// NewUIHandler constructs a UIHandler.
func NewUIHandler(stores *store.Manager, cat *catalog.Catalog) *UIHandler {
	return &UIHandler{stores: stores, catalog: cat}
}

func uiView(st store.State, cat *catalog.Catalog) gin.H {
	view := gin.H{
		"cartOpen":        st.UI.CartOpen,
		"activeProductId": st.UI.ActiveProductID,
		"toast":           st.UI.Toast,
	}
	if st.UI.ActiveProductID != "" {
		if p, ok := cat.Find(st.UI.ActiveProductID); ok {
			view["activeProduct"] = p
		}
	}
	return view
}

// GetUI returns the session's UI state.
func (h *UIHandler) GetUI(c *gin.Context) {
	st := sessionStore(c, h.stores)
	utils.Success(c, 200, "UI state retrieved successfully", uiView(st.State(), h.catalog))
}

// OpenProduct sets the active product detail. An empty productId closes it.
func (h *UIHandler) OpenProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.ProductID != "" {
		if _, ok := h.catalog.Find(req.ProductID); !ok {
			utils.Error(c, 404, "UNKNOWN_PRODUCT", "Product not found")
			return
		}
	}

	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.ProductOpen(req.ProductID))
	utils.Success(c, 200, "Active product updated", uiView(state, h.catalog))
}

// ClearToast dismisses the current notice.
func (h *UIHandler) ClearToast(c *gin.Context) {
	st := sessionStore(c, h.stores)
	state := st.Dispatch(store.ToastClear())
	utils.Success(c, 200, "Toast cleared", uiView(state, h.catalog))
}
