package cart

import (
	"github.com/shopspring/decimal"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

// CartItem is one line of a user's cart, always carrying the joined product so
// callers never price a line against stale data.
type CartItem struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	UserID    int             `json:"user_id"`
	Quantity  int             `json:"quantity"`
	CreatedAt string          `json:"created_at,omitempty"`
	Product   product.Product `json:"product"`
}

// LineTotal is quantity times the live product price.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the aggregate view handed to callers: the lines plus the derived
// subtotal and item count, recomputed from the lines on every read rather than
// maintained incrementally.
type Cart struct {
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Count    int             `json:"count"`
}

// Subtotal sums quantity × live product price over the given lines.
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func buildCart(items []CartItem) Cart {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return Cart{Items: items, Subtotal: Subtotal(items), Count: count}
}
