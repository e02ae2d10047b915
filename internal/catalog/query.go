package catalog

import (
	"sort"
	"strings"

	"github.com/lumierefi/store_api/internal/models"
)

// PageSize is the fixed grid page size.
const PageSize = 24

// PageKey identifies the active navigation page. The page implies a
// category scope for the product grid; non-grid pages yield an empty
// result since no grid is rendered there.
type PageKey string

const (
	PageHome          PageKey = "HOME"
	PageJewellery     PageKey = "JEWELLERY"
	PageRings         PageKey = "RINGS"
	PageNecklaces     PageKey = "NECKLACES"
	PageHighJewellery PageKey = "HIGH JEWELLERY"
	PageGifts         PageKey = "GIFTS"
	PageAbout         PageKey = "ABOUT"
	PageCheckout      PageKey = "CHECKOUT"
	PageAccount       PageKey = "ACCOUNT"
	PageUser          PageKey = "USER"
)

// Filters holds the facet selections for a listing query. An empty set for
// a facet means "no constraint", never "match nothing". Price bounds are
// inclusive whole euros.
type Filters struct {
	PriceMin    int
	PriceMax    int
	Brands      map[models.Brand]bool
	Collections map[models.Collection]bool
	GemShapes   map[models.GemShape]bool
	Materials   map[models.MaterialGroup]bool
}

// NewFilters returns an unconstrained filter set with price bounds spanning
// the whole catalog. Handlers that fail to parse numeric input leave these
// defaults in place rather than erroring.
func (c *Catalog) NewFilters() Filters {
	min, max := c.PriceBounds()
	return Filters{
		PriceMin:    min,
		PriceMax:    max,
		Brands:      map[models.Brand]bool{},
		Collections: map[models.Collection]bool{},
		GemShapes:   map[models.GemShape]bool{},
		Materials:   map[models.MaterialGroup]bool{},
	}
}

// Match reports whether a product passes every facet. Facets combine with
// AND; selections within one facet combine with OR.
func (f Filters) Match(p models.Product) bool {
	euros := p.PriceEuros()
	if euros < f.PriceMin || euros > f.PriceMax {
		return false
	}
	if len(f.Brands) > 0 && !f.Brands[p.Brand] {
		return false
	}
	if len(f.Collections) > 0 && !f.Collections[p.Collection] {
		return false
	}
	if len(f.GemShapes) > 0 && !f.GemShapes[p.GemShape] {
		return false
	}
	if len(f.Materials) > 0 && !f.Materials[p.MaterialGroup] {
		return false
	}
	return true
}

// Result is one page of an ordered, filtered product listing.
type Result struct {
	Items      []models.Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Query runs the full listing pipeline: page scoping, text search, facet
// filtering, stable sort, pagination. It is a pure function of its inputs
// and never fails; an out-of-range page number is clamped, not rejected.
func (c *Catalog) Query(page PageKey, search string, f Filters, mode models.SortMode, pageNum int) Result {
	items := scopeToPage(c.products, page)
	items = applySearch(items, search)
	items = applyFilters(items, f)
	items = applySort(items, mode)
	return paginate(items, pageNum)
}

// scopeToPage restricts the catalog to the active page's category. Pages
// without a product grid scope to nothing; unknown keys pass everything
// through.
func scopeToPage(items []models.Product, page PageKey) []models.Product {
	switch page {
	case PageRings:
		return filterByCategory(items, models.CategoryRings)
	case PageNecklaces:
		return filterByCategory(items, models.CategoryNecklaces)
	case PageHighJewellery:
		return filterByCategory(items, models.CategoryHighJewellery)
	case PageGifts:
		return filterByCategory(items, models.CategoryGifts)
	case PageJewellery:
		return filterByCategory(items,
			models.CategoryRings, models.CategoryNecklaces,
			models.CategoryEarrings, models.CategoryBracelets)
	case PageHome, PageAbout, PageCheckout, PageAccount, PageUser:
		return nil
	default:
		return items
	}
}

func filterByCategory(items []models.Product, categories ...models.Category) []models.Product {
	var out []models.Product
	for _, p := range items {
		for _, cat := range categories {
			if p.Category == cat {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// applySearch keeps products whose searchable text contains the case-folded
// query as a substring. No tokenization, no ranking. An empty or
// whitespace-only query passes everything through.
func applySearch(items []models.Product, query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []models.Product
	for _, p := range items {
		if strings.Contains(searchText(p), q) {
			out = append(out, p)
		}
	}
	return out
}

func searchText(p models.Product) string {
	return strings.ToLower(strings.Join([]string{
		p.Name, string(p.Category), p.Material, p.Gemstones,
		p.Description, string(p.Brand), string(p.Collection),
	}, " "))
}

func applyFilters(items []models.Product, f Filters) []models.Product {
	var out []models.Product
	for _, p := range items {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// applySort returns a sorted copy. Every mode uses a stable sort so that
// products with equal keys keep their incoming relative order.
func applySort(items []models.Product, mode models.SortMode) []models.Product {
	out := make([]models.Product, len(items))
	copy(out, items)
	switch mode {
	case models.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PriceCents < out[j].PriceCents
		})
	case models.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PriceCents > out[j].PriceCents
		})
	case models.SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	default:
		// Featured: badged products first as a single tier regardless of
		// badge kind, then rating descending.
		sort.SliceStable(out, func(i, j int) bool {
			bi, bj := out[i].Badge != "", out[j].Badge != ""
			if bi != bj {
				return bi
			}
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}

// paginate clamps the requested 1-indexed page to the valid range and
// slices out that page. An empty result still reports one (empty) page.
func paginate(items []models.Product, page int) Result {
	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Result{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}
}
