package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCartQuery = `
		SELECT ci.id, ci.product_id, ci.user_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.price, p.images, p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id
	`
	getCartItemQuery = `
		SELECT ci.id, ci.product_id, ci.user_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.price, p.images, p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1
	`
	// one row per (user, product): a second add folds into the existing line
	addCartItemQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCartItem(row interface{ Scan(...any) error }) (CartItem, error) {
	var item CartItem
	var createdAt sql.NullString
	var images pq.StringArray
	err := row.Scan(&item.ID, &item.ProductID, &item.UserID, &item.Quantity, &createdAt,
		&item.Product.ID, &item.Product.Name, &item.Product.Price, &images, &item.Product.StockQuantity)
	if err != nil {
		return CartItem{}, err
	}
	item.CreatedAt = createdAt.String
	item.Product.Images = []string(images)
	return item, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]CartItem, error) {
	rows, err := r.db.QueryContext(ctx, listCartQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, itemID int) (CartItem, error) {
	item, err := scanCartItem(r.db.QueryRowContext(ctx, getCartItemQuery, itemID))
	if err == sql.ErrNoRows {
		return CartItem{}, ErrNotFound
	}
	return item, err
}

func (r *PostgresRepository) Add(ctx context.Context, userID, productID, qty int, createdAt string) (CartItem, error) {
	item := CartItem{UserID: userID, ProductID: productID}
	err := r.db.QueryRowContext(ctx, addCartItemQuery, userID, productID, qty, createdAt).
		Scan(&item.ID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return CartItem{}, err
	}

	var images pq.StringArray
	err = r.db.QueryRowContext(ctx, `SELECT id, name, price, images, stock_quantity FROM products WHERE id = $1`, productID).
		Scan(&item.Product.ID, &item.Product.Name, &item.Product.Price, &images, &item.Product.StockQuantity)
	if err == sql.ErrNoRows {
		return CartItem{}, product.ErrNotFound
	}
	if err != nil {
		return CartItem{}, err
	}
	item.Product.Images = []string(images)
	return item, nil
}

func (r *PostgresRepository) UpdateQuantity(ctx context.Context, itemID, qty int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, qty, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(ctx context.Context, itemID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes every line for the user. Deleting zero rows is fine: clearing
// an already-empty cart must not error.
func (r *PostgresRepository) Clear(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
