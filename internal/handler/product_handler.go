package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/catalog"
	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/utils"
)

// ProductHandler serves the catalog grid and product details.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// GetProducts runs the listing pipeline for the requested page context,
// search text, facet filters, sort mode and page number. Bad numeric
// input falls back to catalog-wide bounds instead of erroring.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	pageKey := catalog.PageKey(c.DefaultQuery("page_key", string(catalog.PageJewellery)))
	search := c.Query("search")
	sortMode := models.SortMode(c.DefaultQuery("sort", string(models.SortFeatured)))

	filters := h.catalog.NewFilters()
	if v := c.Query("price_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.PriceMin = n
		}
	}
	if v := c.Query("price_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.PriceMax = n
		}
	}
	for _, b := range c.QueryArray("brand") {
		filters.Brands[models.Brand(b)] = true
	}
	for _, col := range c.QueryArray("collection") {
		filters.Collections[models.Collection(col)] = true
	}
	for _, g := range c.QueryArray("gem_shape") {
		filters.GemShapes[models.GemShape(g)] = true
	}
	for _, m := range c.QueryArray("material") {
		filters.Materials[models.MaterialGroup(m)] = true
	}

	pageNum := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			pageNum = n
		}
	}

	result := h.catalog.Query(pageKey, search, filters, sortMode, pageNum)

	minEuros, maxEuros := h.catalog.PriceBounds()
	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.Items,
		"priceBounds": gin.H{
			"min": minEuros,
			"max": maxEuros,
		},
	}, result.Page, result.PageSize, result.Total)
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.Find(c.Param("productId"))
	if !ok {
		utils.Error(c, 404, "UNKNOWN_PRODUCT", "Product not found")
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{"product": p})
}
