package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

var (
	ErrNotFound = errors.New("cart item not found")
	// ErrStoreUnavailable wraps failures reaching the store so callers can
	// offer a retry instead of rendering an empty cart.
	ErrStoreUnavailable = errors.New("cart store unavailable")
)

// Repository provides access to a user's cart lines. One row per
// (user, product) pair; Add folds a duplicate product into the existing line.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]CartItem, error)
	GetByID(ctx context.Context, itemID int) (CartItem, error)
	Add(ctx context.Context, userID, productID, qty int, createdAt string) (CartItem, error)
	UpdateQuantity(ctx context.Context, itemID, qty int) error
	Remove(ctx context.Context, itemID int) error
	Clear(ctx context.Context, userID int) error
}

// InMemoryRepository is used for tests and local scenarios. Products must be
// seeded so the join has something to resolve against.
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    []CartItem
	products map[int]product.Product
	nextID   int
}

func NewInMemoryRepository(products []product.Product) *InMemoryRepository {
	r := &InMemoryRepository{products: make(map[int]product.Product, len(products)), nextID: 1}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CartItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			item.Product = r.products[item.ProductID]
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, itemID int) (CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ID == itemID {
			item.Product = r.products[item.ProductID]
			return item, nil
		}
	}
	return CartItem{}, ErrNotFound
}

func (r *InMemoryRepository) Add(ctx context.Context, userID, productID, qty int, createdAt string) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[productID]; !ok {
		return CartItem{}, product.ErrNotFound
	}
	for i, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			r.items[i].Quantity += qty
			out := r.items[i]
			out.Product = r.products[productID]
			return out, nil
		}
	}
	item := CartItem{ID: r.nextID, UserID: userID, ProductID: productID, Quantity: qty, CreatedAt: createdAt}
	r.nextID++
	r.items = append(r.items, item)
	item.Product = r.products[productID]
	return item, nil
}

func (r *InMemoryRepository) UpdateQuantity(ctx context.Context, itemID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == itemID {
			r.items[i].Quantity = qty
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Remove(ctx context.Context, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Clear removes every line for the user. Clearing an already-empty cart is a
// no-op, not an error.
func (r *InMemoryRepository) Clear(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
