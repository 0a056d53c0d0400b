package transport

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderCreateRequest represents the order creation payload. Status defaults
// to pending when omitted.
type OrderCreateRequest struct {
	UserID int64  `json:"user_id" validate:"required"`
	Status string `json:"status"`
}

// OrderItemCreateRequest represents the order item creation payload
type OrderItemCreateRequest struct {
	OrderID   int64 `json:"order_id" validate:"required"`
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"gt=0"`
}

// OrderItemResponse represents order item data in responses
type OrderItemResponse struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderResponse represents order data in responses, with the owning user
// and the order's items nested.
type OrderResponse struct {
	ID     int64               `json:"id"`
	UserID int64               `json:"user_id"`
	Status string              `json:"status"`
	User   *UserResponse       `json:"user"`
	Items  []OrderItemResponse `json:"items"`
}

func newOrderItemResponse(item domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
}

func newOrderResponse(order *domain.Order) OrderResponse {
	response := OrderResponse{
		ID:     order.ID,
		UserID: order.UserID,
		Status: order.Status,
		Items:  make([]OrderItemResponse, 0, len(order.Items)),
	}
	if order.User != nil {
		user := newUserResponse(order.User)
		response.User = &user
	}
	for _, item := range order.Items {
		response.Items = append(response.Items, newOrderItemResponse(item))
	}
	return response
}

// OrderHandler handles HTTP requests for orders and order items
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders", h.ListOrders)
	r.Post("/order-items", h.CreateOrderItem)
}

// CreateOrder handles order creation
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req.UserID, req.Status)
	if err != nil {
		var refErr *repository.InvalidReferenceError
		if errors.As(err, &refErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, refErr.Error())
			return
		}

		h.logger.Error("Failed to create order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.Info("Order created", zap.Int64("order_id", order.ID), zap.Int64("user_id", order.UserID))
	middleware.RespondWithJSON(w, http.StatusCreated, newOrderResponse(order))
}

// ListOrders handles listing orders within a skip/limit window, items and
// users included.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := listWindow(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, newOrderResponse(order))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// CreateOrderItem handles attaching an item to an existing order
func (h *OrderHandler) CreateOrderItem(w http.ResponseWriter, r *http.Request) {
	var req OrderItemCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order item validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.orderService.AddOrderItem(r.Context(), req.OrderID, req.ProductID, req.Quantity)
	if err != nil {
		var refErr *repository.InvalidReferenceError
		if errors.As(err, &refErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, refErr.Error())
			return
		}

		h.logger.Error("Failed to create order item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order item")
		return
	}

	h.logger.Info("Order item created",
		zap.Int64("order_item_id", item.ID),
		zap.Int64("order_id", item.OrderID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, newOrderItemResponse(*item))
}
