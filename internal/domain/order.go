package domain

import (
	"context"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

// orderTransitions is the allowed status graph. DELIVERED and CANCELLED are
// terminal; an order cannot jump e.g. DELIVERED -> PENDING.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

func CanTransitionOrder(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	TotalAmount     float64      `json:"totalAmount"`
	ShippingAddress string       `json:"shippingAddress"`
	PaymentMethod   string       `json:"paymentMethod"`
	Status          OrderStatus  `json:"status"`
	Items           []OrderItem  `json:"orderItems"`
	User            *UserSummary `json:"user,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// OrderItem carries the unit price snapshotted at order time. It never
// tracks the product's live price afterwards.
type OrderItem struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"orderId"`
	ProductID    string  `json:"productId"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductName  string  `json:"productName,omitempty"`
	ProductImage string  `json:"productImage,omitempty"`
}

type ListOrdersFilter struct {
	Status OrderStatus
	Page   int
	Limit  int
}

type OrderRepository interface {
	// PlaceOrder converts the user's cart into an order inside a single
	// serializable transaction: insert the order row, insert one item per
	// cart line with the snapshot unit price, delete the cart rows. Any
	// failure rolls back all of it.
	PlaceOrder(ctx context.Context, userID, shippingAddress, paymentMethod string) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUserID(ctx context.Context, userID string) ([]Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]Order, int, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, userID, shippingAddress, paymentMethod string) (*Order, error)
	ListOrders(ctx context.Context, userID string) ([]Order, error)
}
