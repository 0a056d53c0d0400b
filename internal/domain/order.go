package domain

// OrderStatusPending is the status given to newly created orders.
const OrderStatusPending = "pending"

// Order belongs to one user and owns a collection of order items. User and
// Items are populated on reads; item order is not significant.
type Order struct {
	ID     int64       `json:"id" db:"id"`
	UserID int64       `json:"user_id" db:"user_id"`
	Status string      `json:"status" db:"status"`
	User   *User       `json:"user,omitempty"`
	Items  []OrderItem `json:"items"`
}

// OrderItem references one product within an order.
type OrderItem struct {
	ID        int64 `json:"id" db:"id"`
	OrderID   int64 `json:"order_id" db:"order_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}
