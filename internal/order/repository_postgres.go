package order

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	orderColumns = `id, user_id, status, total_amount, shipping_address, shipping_method, payment_method, notes, contact_email, contact_phone, recipient_name, created_at`

	getOrderQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1 AND user_id = $2
	`
	listOrdersQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	// everything on an order item is the stored snapshot, never a live join
	// against the catalog
	listItemsQuery = `
		SELECT id, order_id, product_id, quantity, price_per_unit, product_name, product_image
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ord Order) (Order, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, status, total_amount, shipping_address, shipping_method, payment_method, notes, contact_email, contact_phone, recipient_name, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		ord.ID, ord.UserID, ord.Status, ord.TotalAmount, ord.ShippingAddress, ord.ShippingMethod,
		ord.PaymentMethod, ord.Notes, ord.ContactEmail, ord.ContactPhone, ord.RecipientName, ord.CreatedAt,
	)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) CreateItems(ctx context.Context, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_per_unit, product_name, product_image)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.OrderID, item.ProductID, item.Quantity, item.PricePerUnit, item.ProductName, item.ProductImage,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *PostgresRepository) Delete(ctx context.Context, orderID string) error {
	// items first; no FK cascade is assumed
	if _, err := r.db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var ord Order
	var notes sql.NullString
	err := row.Scan(&ord.ID, &ord.UserID, &ord.Status, &ord.TotalAmount, &ord.ShippingAddress,
		&ord.ShippingMethod, &ord.PaymentMethod, &notes, &ord.ContactEmail, &ord.ContactPhone,
		&ord.RecipientName, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	ord.Notes = notes.String
	return ord, nil
}

// GetByIDAndUser scopes by both ids: an order id alone must never resolve to
// another user's order.
func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, orderID string, userID int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, getOrderQuery, orderID, userID))
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, listItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderItem, 0)
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.PricePerUnit, &item.ProductName, &item.ProductImage); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
