package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/craftroots/crafts-shop-backend/internal/order"
)

// Shipping tiers and tax rate shown on the checkout page. The total computed
// here is exactly what gets persisted on the order.
var (
	freeShippingThreshold = decimal.NewFromInt(50)
	standardShippingFee   = decimal.RequireFromString("4.99")
	priorityShippingFee   = decimal.RequireFromString("9.99")
	expressShippingFee    = decimal.RequireFromString("15.99")
	taxRate               = decimal.RequireFromString("0.07")
)

// Quote is the price breakdown for a cart + shipping method.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ShippingCost returns the fee for a method given the subtotal: standard is
// free above the threshold, otherwise a flat fee; priority and express are
// always flat. Unknown methods fall back to the standard tier.
func ShippingCost(method string, subtotal decimal.Decimal) decimal.Decimal {
	switch method {
	case order.ShippingExpress:
		return expressShippingFee
	case order.ShippingPriority:
		return priorityShippingFee
	default:
		if subtotal.GreaterThan(freeShippingThreshold) {
			return decimal.Zero
		}
		return standardShippingFee
	}
}

// Tax is a flat percentage of the subtotal.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate)
}

// NewQuote prices a subtotal for the given shipping method.
func NewQuote(subtotal decimal.Decimal, shippingMethod string) Quote {
	shipping := ShippingCost(shippingMethod, subtotal)
	tax := Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
