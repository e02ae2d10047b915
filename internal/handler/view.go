package handler

import (
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/store"
	"github.com/lumierefi/store_api/internal/utils"
)

// cartLine is one resolved cart row in API responses.
type cartLine struct {
	Product   models.Product `json:"product"`
	Qty       int            `json:"qty"`
	LineCents int            `json:"lineCents"`
}

// cartView renders the cart with derived totals. Entries whose product no
// longer exists in the catalog are omitted from the lines and contribute
// nothing to the subtotal.
func cartView(st store.State, cat *catalog.Catalog) gin.H {
	ids := make([]string, 0, len(st.Cart))
	for id := range st.Cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	lines := make([]cartLine, 0, len(ids))
	for _, id := range ids {
		p, ok := cat.Find(id)
		if !ok {
			continue
		}
		qty := st.Cart[id]
		lines = append(lines, cartLine{Product: p, Qty: qty, LineCents: p.PriceCents * qty})
	}

	subtotal := st.CartSubtotalCents(cat.Find)
	return gin.H{
		"items":         lines,
		"count":         st.CartCount(),
		"subtotalCents": subtotal,
		"subtotal":      utils.FormatEUR(subtotal),
		"open":          st.UI.CartOpen,
		"toast":         st.UI.Toast,
	}
}

// favoritesView renders favorites as resolved products plus the raw id set.
func favoritesView(st store.State, cat *catalog.Catalog) gin.H {
	ids := make([]string, 0, len(st.Favorites))
	for id := range st.Favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := cat.Find(id); ok {
			products = append(products, p)
		}
	}
	return gin.H{
		"ids":      ids,
		"products": products,
		"count":    st.FavCount(),
		"toast":    st.UI.Toast,
	}
}
