package user

import (
	"context"
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `id, email, password, first_name, last_name, phone, address, city, state, postal_code, country, created_at, updated_at`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var phone, address, city, state, postal, country, createdAt, updatedAt sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&phone, &address, &city, &state, &postal, &country, &createdAt, &updatedAt)
	if err != nil {
		return User{}, err
	}
	u.Phone = phone.String
	u.Address = address.String
	u.City = city.String
	u.State = state.String
	u.PostalCode = postal.String
	u.Country = country.String
	u.CreatedAt = createdAt.String
	u.UpdatedAt = updatedAt.String
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password, first_name, last_name, phone, address, city, state, postal_code, country, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id`,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Address, u.City, u.State, u.PostalCode, u.Country, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, u User) (User, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5, state = $6, postal_code = $7, country = $8, updated_at = $9
		WHERE id = $10`,
		u.FirstName, u.LastName, u.Phone, u.Address, u.City, u.State, u.PostalCode, u.Country, u.UpdatedAt, id,
	)
	if err != nil {
		return User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// UpsertShipping writes the shipping/contact fields collected at checkout back
// onto the user row so the next checkout pre-fills.
func (r *PostgresRepository) UpsertShipping(ctx context.Context, id int, p ShippingProfile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5, state = $6, postal_code = $7, country = $8, updated_at = $9
		WHERE id = $10`,
		p.FirstName, p.LastName, p.Phone, p.Address, p.City, p.State, p.PostalCode, p.Country,
		time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
