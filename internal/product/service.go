package product

import (
	"context"
	"sort"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// Recommended returns up to limit in-stock products, best-rated first.
func (s *Service) Recommended(ctx context.Context, limit int) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	inStock := make([]Product, 0, len(all))
	for _, p := range all {
		if p.StockQuantity > 0 {
			inStock = append(inStock, p)
		}
	}
	sort.SliceStable(inStock, func(i, j int) bool { return inStock[i].Rating > inStock[j].Rating })
	if limit > 0 && len(inStock) > limit {
		inStock = inStock[:limit]
	}
	return inStock, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int, p Product) (Product, error) {
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
