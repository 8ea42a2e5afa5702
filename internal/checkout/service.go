package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/craftroots/crafts-shop-backend/internal/cart"
	"github.com/craftroots/crafts-shop-backend/internal/order"
	"github.com/craftroots/crafts-shop-backend/internal/user"
)

var (
	// ErrEmptyCart rejects a checkout against an empty cart before any write.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderCreationFailed is terminal for the attempt; the cart is
	// preserved so the user can retry.
	ErrOrderCreationFailed = errors.New("order creation failed")
)

// stepTimeout bounds each write step of the checkout sequence.
const stepTimeout = 10 * time.Second

// CartStore is what checkout needs from the cart aggregate.
type CartStore interface {
	Load(ctx context.Context, userID int) (cart.Cart, error)
	Clear(ctx context.Context, userID int) error
}

// OrderStore is what checkout needs from order persistence.
type OrderStore interface {
	Create(ctx context.Context, ord order.Order) (order.Order, error)
	CreateItems(ctx context.Context, items []order.OrderItem) error
	Delete(ctx context.Context, orderID string) error
}

// ProfileStore writes the shipping profile back after a successful order.
type ProfileStore interface {
	UpsertShipping(ctx context.Context, userID int, p user.ShippingProfile) error
}

// Service sequences the checkout write chain: order header, order items, cart
// clear, profile upsert. The store offers no multi-row transaction, so the
// header+items pair is made all-or-nothing with a compensating delete.
type Service struct {
	carts    CartStore
	orders   OrderStore
	profiles ProfileStore
}

func NewService(carts CartStore, orders OrderStore, profiles ProfileStore) *Service {
	return &Service{carts: carts, orders: orders, profiles: profiles}
}

// PlaceOrder validates the form, prices the cart, and executes the write
// sequence. On success it returns the created order header. The cart is only
// cleared after the order and its items are durably recorded, and a cart that
// fails to clear is left for the next read rather than rolled back.
func (s *Service) PlaceOrder(ctx context.Context, userID int, form Form) (order.Order, error) {
	// step 1: validation, before any write
	if verr := form.Validate(); verr != nil {
		return order.Order{}, verr
	}

	crt, err := s.carts.Load(ctx, userID)
	if err != nil {
		return order.Order{}, err
	}
	if len(crt.Items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	// step 2: one price computation; the same cart read feeds both the total
	// and the per-line snapshots so the items always sum back to the total
	quote := NewQuote(crt.Subtotal, form.ShippingMethod)

	ord := order.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          order.StatusPending,
		TotalAmount:     quote.Total,
		ShippingAddress: form.FlattenedAddress(),
		ShippingMethod:  form.ShippingMethod,
		PaymentMethod:   form.PaymentMethod,
		Notes:           form.Notes,
		ContactEmail:    form.Email,
		ContactPhone:    form.Phone,
		RecipientName:   form.RecipientName(),
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	// step 3: order header
	if err := s.withTimeout(ctx, func(stepCtx context.Context) error {
		_, err := s.orders.Create(stepCtx, ord)
		return err
	}); err != nil {
		log.Printf("checkout: order insert failed (user=%d): %v", userID, err)
		return order.Order{}, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// step 4: order items, price snapshotted from the step-2 read
	items := make([]order.OrderItem, 0, len(crt.Items))
	for _, line := range crt.Items {
		items = append(items, order.OrderItem{
			OrderID:      ord.ID,
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			PricePerUnit: line.Product.Price,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.MainImage(),
		})
	}
	if err := s.withTimeout(ctx, func(stepCtx context.Context) error {
		return s.orders.CreateItems(stepCtx, items)
	}); err != nil {
		log.Printf("checkout: order items insert failed (order=%s user=%d): %v", ord.ID, userID, err)
		// compensate: never leave an order header with no items behind
		if delErr := s.withTimeout(ctx, func(stepCtx context.Context) error {
			return s.orders.Delete(stepCtx, ord.ID)
		}); delErr != nil {
			// orphaned header; log enough to reconcile by hand
			log.Printf("checkout: compensation delete failed, orphaned order %s (user=%d): %v", ord.ID, userID, delErr)
		}
		return order.Order{}, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// step 5: cart clear; the order stands even if this fails
	if err := s.withTimeout(ctx, func(stepCtx context.Context) error {
		return s.carts.Clear(stepCtx, userID)
	}); err != nil {
		log.Printf("warning: checkout: cart clear failed after order %s (user=%d): %v", ord.ID, userID, err)
	}

	// step 6: profile upsert so the next checkout pre-fills; non-fatal
	if err := s.withTimeout(ctx, func(stepCtx context.Context) error {
		return s.profiles.UpsertShipping(stepCtx, userID, form.ShippingProfile())
	}); err != nil {
		log.Printf("warning: checkout: profile upsert failed after order %s (user=%d): %v", ord.ID, userID, err)
	}

	return ord, nil
}

func (s *Service) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	stepCtx, cancel := context.WithTimeout(ctx, stepTimeout)
	defer cancel()
	return fn(stepCtx)
}
