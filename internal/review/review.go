package review

// Review is one customer review of a product.
type Review struct {
	ID           int    `json:"id"`
	ProductID    int    `json:"product_id"`
	UserID       int    `json:"user_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment,omitempty"`
	ReviewerName string `json:"reviewer_name,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// ProductReviews is the list plus the average rating shown on the product page.
type ProductReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
}
