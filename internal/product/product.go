package product

import "github.com/shopspring/decimal"

// Product represents a catalog item and maps to the `products` table.
// Price is a plain decimal amount; images are ordered, the first one is the
// main listing image.
type Product struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Images        []string        `json:"images"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category,omitempty"`
	Rating        float64         `json:"rating,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []string{
	"Handmade Collection",
	"Crafting Supplies",
	"Home Decor",
	"Jewelry",
	"Textiles",
	"Paper Goods",
	"Ceramics",
	"Gifts",
}

// CategoryAllowed reports whether c is one of the supported categories.
func CategoryAllowed(c string) bool {
	for _, allowed := range AllowedCategories {
		if allowed == c {
			return true
		}
	}
	return false
}

// MainImage returns the first image URL or an empty string when the product
// has no images yet.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
