package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Reads
// eager-load the owning user and the order's items.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context, skip, limit int) ([]*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order and reloads it with user and items. A missing
// user surfaces as an InvalidReferenceError from the foreign key constraint.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (user_id, status)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, order.UserID, order.Status).Scan(&order.ID)
	if err != nil {
		if refErr := invalidReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	reloaded, err := r.FindByID(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to reload created order: %w", err)
	}
	*order = *reloaded

	return nil
}

// List retrieves orders with their users and items in creation order within
// the skip/limit window.
func (r *orderRepository) List(ctx context.Context, skip, limit int) ([]*domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, u.username
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{User: &domain.User{}, Items: []domain.OrderItem{}}
		err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.User.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.User.ID = order.UserID
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// FindByID retrieves an order with its user and items by ID.
func (r *orderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.status, u.username
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`

	order := &domain.Order{User: &domain.User{}, Items: []domain.OrderItem{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.User.Username,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	order.User.ID = order.UserID

	if err := r.attachItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// attachItems loads the items for the given orders in one query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[int64]*domain.Order, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
		byID[order.ID] = order
	}

	query := `
		SELECT id, order_id, product_id, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := domain.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating order items: %w", err)
	}

	return nil
}
