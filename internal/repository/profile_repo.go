package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/lumierefi/store_api/internal/models"
)

// ProfileRepository provides data access for the profiles table.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert creates or refreshes the profile row for a user.
func (r *ProfileRepository) Upsert(ctx context.Context, id string, fullName *string) error {
	const query = `INSERT INTO profiles (id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = now()`
	_, err := r.db.ExecContext(ctx, query, id, fullName)
	return err
}

// GetByID fetches a user's profile. Returns (nil, nil) when absent.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	const query = `SELECT id, full_name, updated_at FROM profiles WHERE id = $1`
	var p models.Profile
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
