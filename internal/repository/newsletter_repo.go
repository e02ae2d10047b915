package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// NewsletterRepository provides data access for newsletter_subscriptions.
type NewsletterRepository struct {
	db *sqlx.DB
}

// NewNewsletterRepository creates a new NewsletterRepository.
func NewNewsletterRepository(db *sqlx.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Subscribe records an opt-in. Subscribing an already-subscribed email is
// a no-op, not an error.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) error {
	const query = `INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}
