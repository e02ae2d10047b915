package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lumierefi/store_api/internal/models"
)

// OrderRepository provides data access for orders and order_items.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order header and its item rows in one transaction and
// fills in the generated order id. Either everything lands or nothing does.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	const orderQuery = `INSERT INTO orders
		(user_id, email, shipping_address, shipping_method, payment_method,
		 subtotal_cents, shipping_cents, tax_cents, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	if err := tx.QueryRowxContext(ctx, orderQuery,
		order.UserID, order.Email, order.ShippingAddress, order.ShippingMethod,
		order.PaymentMethod, order.SubtotalCents, order.ShippingCents,
		order.TaxCents, order.TotalCents, order.Status,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	const itemQuery = `INSERT INTO order_items
		(order_id, product_id, product_name, unit_price_cents, qty)
		VALUES ($1, $2, $3, $4, $5)`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			order.ID, item.ProductID, item.ProductName, item.UnitPriceCents, item.Qty); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return tx.Commit()
}

// ListForUser returns a user's orders, newest first, with item rows
// attached.
func (r *OrderRepository) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	const query = `SELECT id, user_id, email, shipping_address, shipping_method,
		payment_method, subtotal_cents, shipping_cents, tax_cents, total_cents,
		status, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	var orders []models.Order
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, err
	}

	const itemsQuery = `SELECT id, order_id, product_id, product_name, unit_price_cents, qty
		FROM order_items WHERE order_id = $1 ORDER BY id`
	for i := range orders {
		if err := r.db.SelectContext(ctx, &orders[i].Items, itemsQuery, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
