package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/lumierefi/store_api/internal/models"
)

// AddressRepository provides data access for the addresses table. Every
// query is scoped to the owning user; ownership is enforced here, not in
// handlers.
type AddressRepository struct {
	db *sqlx.DB
}

// NewAddressRepository creates a new AddressRepository.
func NewAddressRepository(db *sqlx.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

const addressColumns = `id, user_id, label, first_name, last_name, addr, city, postal,
	country, is_default_shipping, is_default_billing, created_at`

// ListForUser returns a user's addresses, newest first.
func (r *AddressRepository) ListForUser(ctx context.Context, userID string) ([]models.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY created_at DESC`
	var out []models.Address
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, err
	}
	return out, nil
}

// CountForUser returns how many addresses a user has saved.
func (r *AddressRepository) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT count(*) FROM addresses WHERE user_id = $1`, userID)
	return n, err
}

// Create inserts an address and fills in the generated id and timestamp.
func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	const query = `INSERT INTO addresses
		(user_id, label, first_name, last_name, addr, city, postal, country,
		 is_default_shipping, is_default_billing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query,
		a.UserID, a.Label, a.First, a.Last, a.Addr, a.City, a.Postal, a.Country,
		a.IsDefaultShipping, a.IsDefaultBilling,
	).Scan(&a.ID, &a.CreatedAt)
}

// Update rewrites an address owned by the user. Returns the number of rows
// touched so callers can distinguish "not yours" from success.
func (r *AddressRepository) Update(ctx context.Context, a *models.Address) (int64, error) {
	const query = `UPDATE addresses SET
		label = $1, first_name = $2, last_name = $3, addr = $4, city = $5,
		postal = $6, country = $7, is_default_shipping = $8, is_default_billing = $9
		WHERE id = $10 AND user_id = $11`
	res, err := r.db.ExecContext(ctx, query,
		a.Label, a.First, a.Last, a.Addr, a.City, a.Postal, a.Country,
		a.IsDefaultShipping, a.IsDefaultBilling, a.ID, a.UserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes an address owned by the user.
func (r *AddressRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
