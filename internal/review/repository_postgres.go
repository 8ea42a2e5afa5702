package review

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsQuery = `
		SELECT r.id, r.product_id, r.user_id, r.rating, r.comment, r.created_at,
		       COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID int) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rv Review
		var comment, createdAt sql.NullString
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &comment, &createdAt, &rv.ReviewerName); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		rv.CreatedAt = createdAt.String
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, rv Review) (Review, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (product_id, user_id, rating, comment, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt,
	).Scan(&rv.ID)
	if err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
