package checkout

import (
	"fmt"
	"strings"

	"github.com/craftroots/crafts-shop-backend/internal/order"
	"github.com/craftroots/crafts-shop-backend/internal/user"
)

// Form is everything the checkout page collects. Card fields are placeholders:
// they are required for credit_card but their format is never checked and they
// are never sent anywhere.
type Form struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`

	ShippingMethod string `json:"shipping_method"`
	PaymentMethod  string `json:"payment_method"`

	CardNumber string `json:"card_number,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// ValidationError lists every required field the form left empty. It is
// produced before any write happens, so a failed validation never touches
// the store.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
}

// Validate checks required contact/address fields, plus the card fields when
// paying by card. Returns nil when the form is complete.
func (f Form) Validate() *ValidationError {
	required := []struct{ name, value string }{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zip_code", f.ZipCode},
		{"country", f.Country},
	}
	if f.PaymentMethod == order.PaymentCreditCard {
		required = append(required,
			struct{ name, value string }{"card_number", f.CardNumber},
			struct{ name, value string }{"card_name", f.CardName},
			struct{ name, value string }{"expiry_date", f.ExpiryDate},
			struct{ name, value string }{"cvv", f.CVV},
		)
	}

	missing := make([]string, 0)
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}
	return nil
}

// RecipientName joins the name fields the way the order stores them.
func (f Form) RecipientName() string {
	return f.FirstName + " " + f.LastName
}

// FlattenedAddress renders the address fields into the single shipping_address
// string persisted on the order.
func (f Form) FlattenedAddress() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", f.Address, f.City, f.State, f.ZipCode, f.Country)
}

// ShippingProfile maps the form's contact fields to the profile upsert written
// after a successful order.
func (f Form) ShippingProfile() user.ShippingProfile {
	return user.ShippingProfile{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Phone:      f.Phone,
		Address:    f.Address,
		City:       f.City,
		State:      f.State,
		PostalCode: f.ZipCode,
		Country:    f.Country,
	}
}
