package review

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("review not found")
)

type Repository interface {
	ListByProduct(ctx context.Context, productID int) ([]Review, error)
	Create(ctx context.Context, r Review) (Review, error)
	Delete(ctx context.Context, id, userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu      sync.RWMutex
	reviews []Review
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) ListByProduct(ctx context.Context, productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Review, 0)
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, rv Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, rv)
	return rv, nil
}

// Delete removes a review only when it belongs to the given user.
func (r *InMemoryRepository) Delete(ctx context.Context, id, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rv := range r.reviews {
		if rv.ID == id && rv.UserID == userID {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
