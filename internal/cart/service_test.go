package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

func seededProducts() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Woven Basket", Price: decimal.NewFromInt(2500), StockQuantity: 10},
		{ID: 2, Name: "Clay Vase", Price: decimal.NewFromInt(1200), StockQuantity: 3},
	}
}

func TestSubtotal_SumsLinesOverLivePrices(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	if _, err := svc.Add(ctx, 7, 1, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, 7, 2, 1); err != nil {
		t.Fatal(err)
	}

	crt, err := svc.Load(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}

	want := decimal.NewFromInt(6200) // 2500*2 + 1200*1
	if !crt.Subtotal.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", crt.Subtotal, want)
	}
	if crt.Count != 3 {
		t.Fatalf("count = %d, want 3", crt.Count)
	}

	// the aggregate subtotal must always agree with summing the lines directly
	if !Subtotal(crt.Items).Equal(crt.Subtotal) {
		t.Fatalf("Subtotal(items) = %s disagrees with cart subtotal %s", Subtotal(crt.Items), crt.Subtotal)
	}
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	crt, err := svc.Add(ctx, 7, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	itemID := crt.Items[0].ID

	crt, err = svc.SetQuantity(ctx, 7, itemID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(crt.Items) != 0 {
		t.Fatalf("expected empty cart after setting quantity to 0, got %d lines", len(crt.Items))
	}
	if !crt.Subtotal.Equal(decimal.Zero) {
		t.Fatalf("subtotal = %s, want 0", crt.Subtotal)
	}
}

func TestSetQuantity_RejectsAboveStock(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	crt, err := svc.Add(ctx, 7, 2, 1) // stock 3
	if err != nil {
		t.Fatal(err)
	}
	itemID := crt.Items[0].ID

	if _, err := svc.SetQuantity(ctx, 7, itemID, 4); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// cart unchanged
	crt, err = svc.Load(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if crt.Items[0].Quantity != 1 {
		t.Fatalf("quantity changed to %d after rejected update", crt.Items[0].Quantity)
	}
}

func TestSetQuantity_SequentialLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	crt, err := svc.Add(ctx, 7, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	itemID := crt.Items[0].ID

	if _, err := svc.SetQuantity(ctx, 7, itemID, 5); err != nil {
		t.Fatal(err)
	}
	crt, err = svc.SetQuantity(ctx, 7, itemID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if crt.Items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want last written value 2", crt.Items[0].Quantity)
	}
}

func TestSetQuantity_OtherUsersLineIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	crt, err := svc.Add(ctx, 7, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	itemID := crt.Items[0].ID

	if _, err := svc.SetQuantity(ctx, 8, itemID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign line, got %v", err)
	}
}

func TestAdd_FoldsDuplicateProductIntoOneLine(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	if _, err := svc.Add(ctx, 7, 1, 1); err != nil {
		t.Fatal(err)
	}
	crt, err := svc.Add(ctx, 7, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(crt.Items) != 1 {
		t.Fatalf("expected 1 line for duplicate product, got %d", len(crt.Items))
	}
	if crt.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", crt.Items[0].Quantity)
	}
}

func TestAdd_SoldOutProductIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository([]product.Product{
		{ID: 3, Name: "Felt Coasters", Price: decimal.NewFromInt(800), StockQuantity: 0},
	})
	svc := NewService(repo)

	if _, err := svc.Add(ctx, 7, 3, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for sold-out product, got %v", err)
	}

	// no line may survive the rejected add, and certainly none below one unit
	crt, err := svc.Load(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range crt.Items {
		if item.Quantity < 1 {
			t.Fatalf("cart holds a line with quantity %d", item.Quantity)
		}
	}
	if len(crt.Items) != 0 {
		t.Fatalf("expected empty cart after rejected add, got %+v", crt.Items)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository(seededProducts())
	svc := NewService(repo)

	if _, err := svc.Add(ctx, 7, 1, 2); err != nil {
		t.Fatal(err)
	}

	if err := svc.Clear(ctx, 7); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := svc.Clear(ctx, 7); err != nil {
		t.Fatalf("second clear on empty cart: %v", err)
	}

	crt, err := svc.Load(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(crt.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(crt.Items))
	}
}
