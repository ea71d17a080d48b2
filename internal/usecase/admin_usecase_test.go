package usecase

import (
	"context"
	"testing"

	"jaggery_shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminUseCase(
	productRepo *mockProductRepo,
	orderRepo *mockOrderRepo,
	bookingRepo *mockBookingRepo,
	userRepo *mockUserRepo,
) domain.AdminUseCase {
	return NewAdminUseCase(productRepo, orderRepo, bookingRepo, userRepo, testLogger())
}

func TestDashboard(t *testing.T) {
	productRepo := &mockProductRepo{AllProducts: []domain.Product{{ID: "p1"}, {ID: "p2"}}}
	orderRepo := &mockOrderRepo{Orders: []domain.Order{{ID: "o1"}}}
	bookingRepo := &mockBookingRepo{Bookings: []domain.TransportBooking{{ID: "b1"}}}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{"u1": {ID: "u1"}}}
	uc := newTestAdminUseCase(productRepo, orderRepo, bookingRepo, userRepo)

	stats, err := uc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalTransportBookings)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Len(t, stats.RecentOrders, 1)
	assert.Len(t, stats.RecentTransportBookings, 1)
}

func TestUpdateOrderStatus_ValidTransition(t *testing.T) {
	orderRepo := &mockOrderRepo{OrderByID: &domain.Order{ID: "o1", Status: domain.OrderPending}}
	uc := newTestAdminUseCase(&mockProductRepo{}, orderRepo, &mockBookingRepo{}, &mockUserRepo{})

	order, err := uc.UpdateOrderStatus(context.Background(), "o1", domain.OrderConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, order.Status)
	assert.Equal(t, domain.OrderConfirmed, orderRepo.UpdatedStatus)
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	orderRepo := &mockOrderRepo{OrderByID: &domain.Order{ID: "o1", Status: domain.OrderDelivered}}
	uc := newTestAdminUseCase(&mockProductRepo{}, orderRepo, &mockBookingRepo{}, &mockUserRepo{})

	_, err := uc.UpdateOrderStatus(context.Background(), "o1", domain.OrderPending)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition from DELIVERED to PENDING")
}

func TestUpdateOrderStatus_SameStatusIsNoOp(t *testing.T) {
	orderRepo := &mockOrderRepo{OrderByID: &domain.Order{ID: "o1", Status: domain.OrderConfirmed}}
	uc := newTestAdminUseCase(&mockProductRepo{}, orderRepo, &mockBookingRepo{}, &mockUserRepo{})

	order, err := uc.UpdateOrderStatus(context.Background(), "o1", domain.OrderConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, order.Status)
	// No write happened.
	assert.Equal(t, domain.OrderStatus(""), orderRepo.UpdatedStatus)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	uc := newTestAdminUseCase(&mockProductRepo{}, &mockOrderRepo{}, &mockBookingRepo{}, &mockUserRepo{})

	_, err := uc.UpdateOrderStatus(context.Background(), "o1", "SHINY")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}

func TestUpdateBookingStatus_Transitions(t *testing.T) {
	bookingRepo := &mockBookingRepo{BookingByID: &domain.TransportBooking{ID: "b1", Status: domain.BookingPending}}
	uc := newTestAdminUseCase(&mockProductRepo{}, &mockOrderRepo{}, bookingRepo, &mockUserRepo{})

	booking, err := uc.UpdateBookingStatus(context.Background(), "b1", domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)

	bookingRepo.BookingByID.Status = domain.BookingCancelled
	_, err = uc.UpdateBookingStatus(context.Background(), "b1", domain.BookingConfirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status transition")
}

func TestCreateProduct_Validation(t *testing.T) {
	productRepo := &mockProductRepo{}
	uc := newTestAdminUseCase(productRepo, &mockOrderRepo{}, &mockBookingRepo{}, &mockUserRepo{})

	_, err := uc.CreateProduct(context.Background(), &domain.Product{Name: "   "})
	assert.Error(t, err)

	_, err = uc.CreateProduct(context.Background(), &domain.Product{Name: "Palm Jaggery", Price: -1})
	assert.Error(t, err)

	created, err := uc.CreateProduct(context.Background(), &domain.Product{Name: "Palm Jaggery", Price: 15000})
	require.NoError(t, err)
	assert.Equal(t, "Palm Jaggery", created.Name)
}

func TestListOrders_InvalidStatusFilter(t *testing.T) {
	uc := newTestAdminUseCase(&mockProductRepo{}, &mockOrderRepo{}, &mockBookingRepo{}, &mockUserRepo{})

	_, _, err := uc.ListOrders(context.Background(), domain.ListOrdersFilter{Status: "BOGUS"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status filter")
}

func TestListProducts_Pagination(t *testing.T) {
	productRepo := &mockProductRepo{AllProducts: make([]domain.Product, 25)}
	uc := newTestAdminUseCase(productRepo, &mockOrderRepo{}, &mockBookingRepo{}, &mockUserRepo{})

	_, pagination, err := uc.ListProducts(context.Background(), domain.ListProductsFilter{Page: 2, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 2, pagination.Page)
	assert.Equal(t, 25, pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
}

func TestUpdateUserRole(t *testing.T) {
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleCustomer},
	}}
	uc := newTestAdminUseCase(&mockProductRepo{}, &mockOrderRepo{}, &mockBookingRepo{}, userRepo)

	user, err := uc.UpdateUserRole(context.Background(), "u1", domain.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, user.Role)

	_, err = uc.UpdateUserRole(context.Background(), "u1", "SUPERUSER")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}
