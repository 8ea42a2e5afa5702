package cart

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInsufficientStock rejects quantities above the product's current
	// stock; the cart is left unchanged.
	ErrInsufficientStock = errors.New("requested quantity exceeds stock")
)

// Service is the cart aggregate: the authoritative list of a user's cart
// lines and their derived subtotal. Every mutation returns the re-fetched
// cart instead of patching a local copy.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Load(ctx context.Context, userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}
	return buildCart(items), nil
}

func (s *Service) Add(ctx context.Context, userID, productID, qty int) (Cart, error) {
	if userID <= 0 || productID <= 0 {
		return Cart{}, ErrNotFound
	}
	// zero qty does nothing, but we still return the current cart
	if qty <= 0 {
		return s.Load(ctx, userID)
	}

	item, err := s.repo.Add(ctx, userID, productID, qty, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return Cart{}, err
	}
	if item.Product.StockQuantity < 1 {
		// sold out: a line can never hold less than one unit, so remove
		// whatever the upsert left behind and reject the add
		if err := s.repo.Remove(ctx, item.ID); err != nil {
			return Cart{}, err
		}
		return Cart{}, ErrInsufficientStock
	}
	if item.Quantity > item.Product.StockQuantity {
		// cap the folded line at current stock rather than overselling
		if err := s.repo.UpdateQuantity(ctx, item.ID, item.Product.StockQuantity); err != nil {
			return Cart{}, err
		}
	}
	return s.Load(ctx, userID)
}

// SetQuantity sets a line's quantity. Zero or negative removes the line;
// anything above the product's current stock is rejected with
// ErrInsufficientStock and the cart is untouched.
func (s *Service) SetQuantity(ctx context.Context, userID, itemID, qty int) (Cart, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return Cart{}, err
	}
	if item.UserID != userID {
		// never mutate another user's line
		return Cart{}, ErrNotFound
	}

	if qty <= 0 {
		if err := s.repo.Remove(ctx, itemID); err != nil {
			return Cart{}, err
		}
		return s.Load(ctx, userID)
	}

	if qty > item.Product.StockQuantity {
		return Cart{}, ErrInsufficientStock
	}

	if err := s.repo.UpdateQuantity(ctx, itemID, qty); err != nil {
		return Cart{}, err
	}
	return s.Load(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, itemID int) (Cart, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return Cart{}, err
	}
	if item.UserID != userID {
		return Cart{}, ErrNotFound
	}
	if err := s.repo.Remove(ctx, itemID); err != nil {
		return Cart{}, err
	}
	return s.Load(ctx, userID)
}

// Clear empties the user's cart. Idempotent: clearing an empty cart succeeds.
func (s *Service) Clear(ctx context.Context, userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(ctx, userID)
}
