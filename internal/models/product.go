package models

// Category enumerates the catalog categories.
type Category string

const (
	CategoryRings         Category = "Rings"
	CategoryNecklaces     Category = "Necklaces"
	CategoryEarrings      Category = "Earrings"
	CategoryBracelets     Category = "Bracelets"
	CategoryHighJewellery Category = "High Jewellery"
	CategoryGifts         Category = "Gifts"
)

// Brand enumerates the carried brands.
type Brand string

const (
	BrandKalevala Brand = "Kalevala"
	BrandLumoava  Brand = "Lumoava"
	BrandLapponia Brand = "Lapponia"
	BrandLumiere  Brand = "Lumière"
)

// Collection enumerates the product collections.
type Collection string

const (
	CollectionModern       Collection = "Modern"
	CollectionOriginals    Collection = "Originals"
	CollectionLimitedDrops Collection = "Limited drops"
	CollectionHeritage     Collection = "Heritage"
	CollectionSignature    Collection = "Signature"
	CollectionGiftSets     Collection = "Gift Sets"
)

// GemShape enumerates gemstone cuts; GemShapeNone marks an unadorned piece.
type GemShape string

const (
	GemShapeRound    GemShape = "Round"
	GemShapeOval     GemShape = "Oval"
	GemShapePear     GemShape = "Pear"
	GemShapeEmerald  GemShape = "Emerald"
	GemShapeMarquise GemShape = "Marquise"
	GemShapeNone     GemShape = "None"
)

// MaterialGroup buckets free-text materials into filterable groups.
type MaterialGroup string

const (
	MaterialSilver  MaterialGroup = "Silver"
	MaterialGold    MaterialGroup = "Gold"
	MaterialVermeil MaterialGroup = "Vermeil"
	MaterialMixed   MaterialGroup = "Mixed"
)

// Badge marks a product for featured placement. Empty means no badge.
type Badge string

const (
	BadgeNew        Badge = "New"
	BadgeBestseller Badge = "Bestseller"
	BadgeLimited    Badge = "Limited"
)

// SortMode selects the ordering applied to a product listing.
type SortMode string

const (
	SortFeatured  SortMode = "Featured"
	SortPriceAsc  SortMode = "Price: Low → High"
	SortPriceDesc SortMode = "Price: High → Low"
	SortRating    SortMode = "Rating"
)

// Product is a catalog entry. The catalog is loaded once at startup and
// never mutated, so products are shared freely across goroutines.
// All money amounts are integer cents; conversion to euros happens only
// at formatting or filter boundaries.
type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	PriceCents    int           `json:"priceCents"`
	Material      string        `json:"material"`
	MaterialGroup MaterialGroup `json:"materialGroup"`
	Gemstones     string        `json:"gemstones"`
	GemShape      GemShape      `json:"gemShape"`
	Brand         Brand         `json:"brand"`
	Collection    Collection    `json:"collection"`
	Description   string        `json:"description"`
	Rating        float64       `json:"rating"`
	Badge         Badge         `json:"badge,omitempty"`
}

// PriceEuros returns the rounded whole-euro price used by the price facet.
func (p Product) PriceEuros() int {
	return (p.PriceCents + 50) / 100
}
