package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/lumierefi/store_api/internal/models"
)

// UserRepository provides data access for the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in the generated id and timestamp.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const query = `INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at`
	return r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
}

// GetByEmail finds a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	var u models.User
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByID finds a user by id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	var u models.User
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
