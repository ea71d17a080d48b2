package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jaggery_shop/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.AdminUseCase = (*adminUseCase)(nil)

type adminUseCase struct {
	productRepo domain.ProductRepository
	orderRepo   domain.OrderRepository
	bookingRepo domain.BookingRepository
	userRepo    domain.UserRepository
	log         *logrus.Logger
}

func NewAdminUseCase(
	productRepo domain.ProductRepository,
	orderRepo domain.OrderRepository,
	bookingRepo domain.BookingRepository,
	userRepo domain.UserRepository,
	logger *logrus.Logger,
) domain.AdminUseCase {
	return &adminUseCase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		log:         logger,
	}
}

const recentLimit = 5

func (uc *adminUseCase) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}
	var err error

	if stats.TotalProducts, err = uc.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("could not count products: %w", err)
	}
	if stats.TotalOrders, err = uc.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("could not count orders: %w", err)
	}
	if stats.TotalTransportBookings, err = uc.bookingRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("could not count bookings: %w", err)
	}
	if stats.TotalUsers, err = uc.userRepo.CountUsers(ctx); err != nil {
		return nil, fmt.Errorf("could not count users: %w", err)
	}
	if stats.RecentOrders, err = uc.orderRepo.ListRecent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("could not list recent orders: %w", err)
	}
	if stats.RecentTransportBookings, err = uc.bookingRepo.ListRecent(ctx, recentLimit); err != nil {
		return nil, fmt.Errorf("could not list recent bookings: %w", err)
	}

	return stats, nil
}

func paginationFor(page, limit, total int) *domain.Pagination {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	pages := (total + limit - 1) / limit
	return &domain.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func (uc *adminUseCase) ListProducts(ctx context.Context, filter domain.ListProductsFilter) ([]domain.Product, *domain.Pagination, error) {
	products, total, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return products, paginationFor(filter.Page, filter.Limit, total), nil
}

func (uc *adminUseCase) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if product.Price < 0 {
		return nil, errors.New("product price cannot be negative")
	}

	created, err := uc.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Admin created product %s (%s)", created.ID, created.Name)
	return created, nil
}

func (uc *adminUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("product ID is required")
	}
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *adminUseCase) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		return nil, errors.New("product ID is required")
	}
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if product.Price < 0 {
		return nil, errors.New("product price cannot be negative")
	}

	updated, err := uc.productRepo.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Admin updated product %s", updated.ID)
	return updated, nil
}

func (uc *adminUseCase) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("product ID is required")
	}
	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Infof("Use Case: Admin deleted product %s", id)
	return nil
}

func (uc *adminUseCase) ListOrders(ctx context.Context, filter domain.ListOrdersFilter) ([]domain.Order, *domain.Pagination, error) {
	if filter.Status != "" && !domain.IsValidOrderStatus(filter.Status) {
		return nil, nil, fmt.Errorf("invalid order status filter: %s", filter.Status)
	}

	orders, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return orders, paginationFor(filter.Page, filter.Limit, total), nil
}

func (uc *adminUseCase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, errors.New("order ID is required")
	}
	return uc.orderRepo.GetByID(ctx, id)
}

// UpdateOrderStatus enforces the status graph: the target must be a valid
// status and reachable from the order's current status.
func (uc *adminUseCase) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" {
		return nil, errors.New("order ID is required")
	}
	if !domain.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	current, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if !domain.CanTransitionOrder(current.Status, status) {
		uc.log.Warnf("Use Case: Rejected order %s status transition %s -> %s", id, current.Status, status)
		return nil, fmt.Errorf("invalid status transition from %s to %s", current.Status, status)
	}

	updated, err := uc.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Admin moved order %s from %s to %s", id, current.Status, status)
	return updated, nil
}

func (uc *adminUseCase) DeleteOrder(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("order ID is required")
	}
	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Infof("Use Case: Admin deleted order %s", id)
	return nil
}

func (uc *adminUseCase) ListBookings(ctx context.Context) ([]domain.TransportBooking, error) {
	return uc.bookingRepo.ListAll(ctx)
}

func (uc *adminUseCase) GetBooking(ctx context.Context, id string) (*domain.TransportBooking, error) {
	if id == "" {
		return nil, errors.New("booking ID is required")
	}
	return uc.bookingRepo.GetByID(ctx, id)
}

func (uc *adminUseCase) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.TransportBooking, error) {
	if id == "" {
		return nil, errors.New("booking ID is required")
	}
	if !domain.IsValidBookingStatus(status) {
		return nil, fmt.Errorf("invalid booking status: %s", status)
	}

	current, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if !domain.CanTransitionBooking(current.Status, status) {
		uc.log.Warnf("Use Case: Rejected booking %s status transition %s -> %s", id, current.Status, status)
		return nil, fmt.Errorf("invalid status transition from %s to %s", current.Status, status)
	}

	updated, err := uc.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Admin moved booking %s from %s to %s", id, current.Status, status)
	return updated, nil
}

func (uc *adminUseCase) DeleteBooking(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("booking ID is required")
	}
	if err := uc.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Infof("Use Case: Admin deleted booking %s", id)
	return nil
}

func (uc *adminUseCase) ListUsers(ctx context.Context, filter domain.ListUsersFilter) ([]domain.User, *domain.Pagination, error) {
	if filter.Role != "" && !domain.IsValidRole(filter.Role) {
		return nil, nil, fmt.Errorf("invalid role filter: %s", filter.Role)
	}

	users, total, err := uc.userRepo.ListUsers(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return users, paginationFor(filter.Page, filter.Limit, total), nil
}

func (uc *adminUseCase) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if id == "" {
		return nil, errors.New("user ID is required")
	}
	if !domain.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	user, err := uc.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	uc.log.Infof("Use Case: Admin set role of user %s to %s", id, role)
	return user, nil
}

func (uc *adminUseCase) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("user ID is required")
	}
	if err := uc.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	uc.log.Infof("Use Case: Admin deleted user %s", id)
	return nil
}
