package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// OrderService defines the interface for order and order item logic.
// Orders are created empty; items are attached by separate calls, each its
// own implicit transaction.
type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, status string) (*domain.Order, error)
	ListOrders(ctx context.Context, skip, limit int) ([]*domain.Order, error)
	AddOrderItem(ctx context.Context, orderID, productID int64, quantity int) (*domain.OrderItem, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

// CreateOrder creates a new empty order for the user, defaulting the status
// to pending.
func (s *orderService) CreateOrder(ctx context.Context, userID int64, status string) (*domain.Order, error) {
	if status == "" {
		status = domain.OrderStatusPending
	}

	order := &domain.Order{
		UserID: userID,
		Status: status,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// ListOrders retrieves orders with users and items within the skip/limit
// window.
func (s *orderService) ListOrders(ctx context.Context, skip, limit int) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// AddOrderItem attaches an item to an existing order. Nonexistent order or
// product ids surface as repository.InvalidReferenceError.
func (s *orderService) AddOrderItem(ctx context.Context, orderID, productID int64, quantity int) (*domain.OrderItem, error) {
	item := &domain.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
	}

	if err := s.orderItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}
