package wishlist

import "github.com/craftroots/crafts-shop-backend/internal/product"

// Item is one wishlist row joined with its product for display.
type Item struct {
	ID        int             `json:"id"`
	UserID    int             `json:"user_id"`
	ProductID int             `json:"product_id"`
	CreatedAt string          `json:"created_at,omitempty"`
	Product   product.Product `json:"product"`
}
