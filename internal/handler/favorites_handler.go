package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/middleware"
	"github.com/lumierefi/store_api/internal/service"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// FavoritesHandler exposes the session favorites set.
type FavoritesHandler struct {
	stores    *store.Manager
	favorites *service.FavoritesService
	catalog   *catalog.Catalog
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(stores *store.Manager, favorites *service.FavoritesService, cat *catalog.Catalog) *FavoritesHandler {
	return &FavoritesHandler{stores: stores, favorites: favorites, catalog: cat}
}

// GetFavorites returns the session's favorites.
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	st := sessionStore(c, h.stores)
	utils.Success(c, 200, "Favorites retrieved successfully", favoritesView(st.State(), h.catalog))
}

// Toggle flips a product's favorite status. For signed-in users the flip
// is optimistic: applied locally first, rolled back with a notice if the
// remote write fails.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	productID := c.Param("productId")
	if _, ok := h.catalog.Find(productID); !ok {
		utils.Error(c, 404, "UNKNOWN_PRODUCT", "Product not found")
		return
	}

	key := middleware.SessionKey(c)
	st := sessionStore(c, h.stores)
	nowFav, state := h.favorites.Toggle(c.Request.Context(), st, productID)
	h.stores.Persist(c.Request.Context(), key)

	view := favoritesView(state, h.catalog)
	view["favorited"] = nowFav
	utils.Success(c, 200, "Favorites updated", view)
}
