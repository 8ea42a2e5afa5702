package wishlist

import (
	"context"
	"errors"
	"sync"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

var (
	ErrNotFound = errors.New("wishlist item not found")
)

// Repository stores one row per (user, product); adding twice is a no-op.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]Item, error)
	Add(ctx context.Context, userID, productID int, createdAt string) error
	Remove(ctx context.Context, userID, productID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    []Item
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

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			item.Product = r.products[item.ProductID]
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Add(ctx context.Context, userID, productID int, createdAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			return nil
		}
	}
	r.items = append(r.items, Item{ID: r.nextID, UserID: userID, ProductID: productID, CreatedAt: createdAt})
	r.nextID++
	return nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
