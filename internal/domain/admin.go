package domain

import "context"

// DashboardStats is the admin landing page summary: entity counts plus the
// five most recent orders and transport bookings.
type DashboardStats struct {
	TotalProducts           int                `json:"totalProducts"`
	TotalOrders             int                `json:"totalOrders"`
	TotalTransportBookings  int                `json:"totalTransportBookings"`
	TotalUsers              int                `json:"totalUsers"`
	RecentOrders            []Order            `json:"recentOrders"`
	RecentTransportBookings []TransportBooking `json:"recentTransportBookings"`
}

type AdminUseCase interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)

	ListProducts(ctx context.Context, filter ListProductsFilter) ([]Product, *Pagination, error)
	CreateProduct(ctx context.Context, product *Product) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListOrders(ctx context.Context, filter ListOrdersFilter) ([]Order, *Pagination, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error)
	DeleteOrder(ctx context.Context, id string) error

	ListBookings(ctx context.Context) ([]TransportBooking, error)
	GetBooking(ctx context.Context, id string) (*TransportBooking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (*TransportBooking, error)
	DeleteBooking(ctx context.Context, id string) error

	ListUsers(ctx context.Context, filter ListUsersFilter) ([]User, *Pagination, error)
	UpdateUserRole(ctx context.Context, id string, role Role) (*User, error)
	DeleteUser(ctx context.Context, id string) error
}
