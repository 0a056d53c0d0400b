package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
)

// OrderItemRepository defines the interface for order item data access
type OrderItemRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) error
}

type orderItemRepository struct {
	db *sql.DB
}

// NewOrderItemRepository creates a new instance of OrderItemRepository
func NewOrderItemRepository(db *sql.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

// Create inserts a new order item and fills in the generated primary key.
// A missing order or product surfaces as an InvalidReferenceError from the
// corresponding foreign key constraint.
func (r *orderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, item.OrderID, item.ProductID, item.Quantity).Scan(&item.ID)
	if err != nil {
		if refErr := invalidReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return nil
}
