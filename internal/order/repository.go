package order

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("order not found")
)

// Repository defines persistence operations for orders and their lines.
type Repository interface {
	Create(ctx context.Context, ord Order) (Order, error)
	CreateItems(ctx context.Context, items []OrderItem) error
	// Delete exists solely so checkout can compensate a failed item insert;
	// nothing else removes orders.
	Delete(ctx context.Context, orderID string) error
	GetByIDAndUser(ctx context.Context, orderID string, userID int) (Order, error)
	ListItems(ctx context.Context, orderID string) ([]OrderItem, error)
	ListByUser(ctx context.Context, userID int) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	items  []OrderItem
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) CreateItems(ctx context.Context, items []OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		item.ID = r.nextID
		r.nextID++
		r.items = append(r.items, item)
	}
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ord := range r.orders {
		if ord.ID == orderID {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) GetByIDAndUser(ctx context.Context, orderID string, userID int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.orders {
		if ord.ID == orderID && ord.UserID == userID {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]OrderItem, 0)
	for _, item := range r.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ord := range r.orders {
		if ord.ID == orderID {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}
