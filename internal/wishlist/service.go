package wishlist

import (
	"context"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.ListByUser(ctx, userID)
}

// Add saves a product to the wishlist; saving it twice is a no-op.
func (s *Service) Add(ctx context.Context, userID, productID int) ([]Item, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.Add(ctx, userID, productID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID int) ([]Item, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}
