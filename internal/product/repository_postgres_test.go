package product

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var productCols = []string{"id", "name", "description", "price", "images", "stock_quantity", "category", "rating", "created_at", "updated_at"}

func TestGetByID_ScansFullRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows(productCols).
		AddRow(9, "Woven Basket", "hand woven", "2500", "{basket1.jpg,basket2.jpg}", 10, "baskets", 4.5, "2026-01-05", "2026-01-05")
	mock.ExpectQuery("FROM products").WithArgs(9).WillReturnRows(rows)

	p, err := repo.GetByID(context.Background(), 9)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if p.ID != 9 || p.Name != "Woven Basket" {
		t.Fatalf("unexpected product %+v", p)
	}
	if len(p.Images) != 2 || p.MainImage() != "basket1.jpg" {
		t.Fatalf("images not scanned: %+v", p.Images)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_MissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("FROM products").WithArgs(404).WillReturnRows(sqlmock.NewRows(productCols))

	if _, err := repo.GetByID(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListByIDs_EmptySliceSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// no ExpectQuery: hitting the database at all would fail the test
	products, err := repo.ListByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("expected nil err, got %v", err)
	}
	if len(products) != 0 {
		t.Fatalf("expected no products, got %d", len(products))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdate_MissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.Update(context.Background(), 404, Product{Name: "Gone"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
