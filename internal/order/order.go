package order

import "github.com/shopspring/decimal"

// Order statuses. Orders are created pending and only ever move between these
// states; the client never deletes an order (the compensation delete in
// checkout is the one exception).
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Shipping methods.
const (
	ShippingStandard = "standard"
	ShippingPriority = "priority"
	ShippingExpress  = "express"
)

// Payment methods. Collected but never charged; there is no processor behind them.
const (
	PaymentCreditCard = "credit_card"
	PaymentPaypal     = "paypal"
)

// Order is the order header. TotalAmount is persisted at creation time and
// never recomputed afterwards.
type Order struct {
	ID              string          `json:"id"`
	UserID          int             `json:"user_id"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingMethod  string          `json:"shipping_method"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
	ContactEmail    string          `json:"contact_email"`
	ContactPhone    string          `json:"contact_phone"`
	RecipientName   string          `json:"recipient_name"`
	CreatedAt       string          `json:"created_at"`
}

// OrderItem is one immutable line of an order. PricePerUnit, ProductName and
// ProductImage snapshot the product at order time, so confirmations never
// drift when the catalog changes later.
type OrderItem struct {
	ID           int             `json:"id"`
	OrderID      string          `json:"order_id"`
	ProductID    int             `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductImage string          `json:"product_image,omitempty"`
}

// LineTotal is quantity times the snapshot price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PricePerUnit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
