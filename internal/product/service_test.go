package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecommended_BestRatedInStockFirst(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: 1, Name: "Woven Basket", Price: decimal.NewFromInt(2500), StockQuantity: 10, Rating: 4.2},
		{ID: 2, Name: "Clay Vase", Price: decimal.NewFromInt(1200), StockQuantity: 0, Rating: 5.0},
		{ID: 3, Name: "Macrame Hanger", Price: decimal.NewFromInt(1800), StockQuantity: 4, Rating: 4.8},
		{ID: 4, Name: "Carved Spoon", Price: decimal.NewFromInt(900), StockQuantity: 2, Rating: 3.1},
	})
	svc := NewService(repo)

	got, err := svc.Recommended(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	// the sold-out vase is skipped despite its top rating
	if got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected recommendation order: %d, %d", got[0].ID, got[1].ID)
	}
}

func TestRecommended_ZeroLimitReturnsAllInStock(t *testing.T) {
	repo := NewInMemoryRepository([]Product{
		{ID: 1, StockQuantity: 1, Rating: 1},
		{ID: 2, StockQuantity: 0, Rating: 5},
		{ID: 3, StockQuantity: 1, Rating: 3},
	})
	svc := NewService(repo)

	got, err := svc.Recommended(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 in-stock products, got %d", len(got))
	}
}
