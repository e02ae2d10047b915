package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// FavoriteRepository provides data access for the favorites table. Rows
// are keyed (user_id, product_id); upsert is idempotent so the sign-in
// reconciliation push can replay local favorites safely.
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListForUser returns the product ids a user has favorited.
func (r *FavoriteRepository) ListForUser(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT product_id FROM favorites WHERE user_id = $1 ORDER BY created_at`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

// Upsert marks a product favorited for a user; repeats are no-ops.
func (r *FavoriteRepository) Upsert(ctx context.Context, userID, productID string) error {
	const query = `INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, productID)
	return err
}

// Delete removes a favorite; absent rows are a no-op.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, productID string) error {
	const query = `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, productID)
	return err
}
