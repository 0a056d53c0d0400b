package service

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type mockOrderRepository struct {
	orders []*domain.Order
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.UserID == 0 {
		return &repository.InvalidReferenceError{Reference: "user"}
	}
	order.ID = int64(len(m.orders) + 1)
	order.User = &domain.User{ID: order.UserID, Username: "user"}
	order.Items = []domain.OrderItem{}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepository) List(ctx context.Context, skip, limit int) ([]*domain.Order, error) {
	return m.orders, nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	for _, order := range m.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

type mockOrderItemRepository struct {
	items []*domain.OrderItem
}

func (m *mockOrderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	if item.OrderID == 0 {
		return &repository.InvalidReferenceError{Reference: "order"}
	}
	item.ID = int64(len(m.items) + 1)
	m.items = append(m.items, item)
	return nil
}

func TestCreateOrderDefaultsStatusToPending(t *testing.T) {
	service := NewOrderService(&mockOrderRepository{}, &mockOrderItemRepository{})

	order, err := service.CreateOrder(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected status %q, got %q", domain.OrderStatusPending, order.Status)
	}
}

func TestCreateOrderKeepsExplicitStatus(t *testing.T) {
	service := NewOrderService(&mockOrderRepository{}, &mockOrderItemRepository{})

	order, err := service.CreateOrder(context.Background(), 1, "confirmed")
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != "confirmed" {
		t.Errorf("expected status %q, got %q", "confirmed", order.Status)
	}
}

func TestAddOrderItemPropagatesReferenceErrors(t *testing.T) {
	service := NewOrderService(&mockOrderRepository{}, &mockOrderItemRepository{})

	_, err := service.AddOrderItem(context.Background(), 0, 1, 2)
	if err == nil {
		t.Fatal("expected an error for a missing order reference")
	}

	refErr, ok := err.(*repository.InvalidReferenceError)
	if !ok {
		t.Fatalf("expected InvalidReferenceError, got %T", err)
	}
	if refErr.Reference != "order" {
		t.Errorf("expected reference %q, got %q", "order", refErr.Reference)
	}
}
