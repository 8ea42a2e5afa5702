package review

import (
	"context"
	"errors"
)

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByProduct(ctx context.Context, productID int) (ProductReviews, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return ProductReviews{}, err
	}

	avg := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		avg = float64(sum) / float64(len(reviews))
	}
	return ProductReviews{Reviews: reviews, AverageRating: avg}, nil
}

func (s *Service) Create(ctx context.Context, rv Review) (Review, error) {
	if rv.Rating < 1 || rv.Rating > 5 {
		return Review{}, ErrInvalidRating
	}
	return s.repo.Create(ctx, rv)
}

func (s *Service) Delete(ctx context.Context, id, userID int) error {
	return s.repo.Delete(ctx, id, userID)
}
