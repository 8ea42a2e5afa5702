package wishlist

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listWishlistQuery = `
		SELECT wi.id, wi.user_id, wi.product_id, wi.created_at,
		       p.id, p.name, p.price, p.images, p.stock_quantity
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC, wi.id DESC
	`
	addWishlistQuery = `
		INSERT INTO wishlist_items (user_id, product_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, listWishlistQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var item Item
		var createdAt sql.NullString
		var images pq.StringArray
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &createdAt,
			&item.Product.ID, &item.Product.Name, &item.Product.Price, &images, &item.Product.StockQuantity); err != nil {
			return nil, err
		}
		item.CreatedAt = createdAt.String
		item.Product.Images = []string(images)
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID int, createdAt string) error {
	_, err := r.db.ExecContext(ctx, addWishlistQuery, userID, productID, createdAt)
	return err
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
