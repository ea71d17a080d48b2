package usecase

import (
	"context"
	"io"
	"strconv"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/repository"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// mockUserRepo implements domain.UserRepository for testing.
type mockUserRepo struct {
	UsersByEmail map[string]*domain.User
	UsersByID    map[string]*domain.User
	CreatedUser  *domain.User // captures the user passed to CreateUser
	CreateErr    error
	UpdatedUser  *domain.User
	UpdateErr    error
	Err          error
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	m.CreatedUser = user
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return user, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.UsersByEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	user, ok := m.UsersByID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id, name, phone string) (*domain.User, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if m.UpdatedUser != nil {
		return m.UpdatedUser, nil
	}
	return &domain.User{ID: id, Name: name, Phone: phone}, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	user, ok := m.UsersByID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated := *user
	updated.Role = role
	return &updated, nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, _ string) error {
	return m.Err
}

func (m *mockUserRepo) ListUsers(_ context.Context, _ domain.ListUsersFilter) ([]domain.User, int, error) {
	return nil, 0, m.Err
}

func (m *mockUserRepo) CountUsers(_ context.Context) (int, error) {
	return len(m.UsersByID), m.Err
}

// mockProductRepo implements domain.ProductRepository for testing.
type mockProductRepo struct {
	Products       map[string]*domain.Product
	AllProducts    []domain.Product
	CreatedProduct *domain.Product
	UpdatedProduct *domain.Product
	DeletedID      string
	Err            error
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	product, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return product, nil
}

func (m *mockProductRepo) GetAll(_ context.Context) ([]domain.Product, error) {
	return m.AllProducts, m.Err
}

func (m *mockProductRepo) GetByCategory(_ context.Context, category string) ([]domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.Product
	for _, p := range m.AllProducts {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Search(_ context.Context, query string) ([]domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.Product
	for _, p := range m.AllProducts {
		if p.Name == query {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) GetFeatured(_ context.Context) ([]domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.Product
	for _, p := range m.AllProducts {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) List(_ context.Context, _ domain.ListProductsFilter) ([]domain.Product, int, error) {
	return m.AllProducts, len(m.AllProducts), m.Err
}

func (m *mockProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.CreatedProduct = product
	if m.Err != nil {
		return nil, m.Err
	}
	return product, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	m.UpdatedProduct = product
	if m.Err != nil {
		return nil, m.Err
	}
	return product, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	m.DeletedID = id
	return m.Err
}

func (m *mockProductRepo) Count(_ context.Context) (int, error) {
	return len(m.AllProducts), m.Err
}

// mockCartRepo implements domain.CartRepository for testing.
type mockCartRepo struct {
	Lines       []domain.CartLine
	Upserted    []string // "<productID>:<quantity>" per call
	Removed     []string
	UpsertErr   error
	RemoveErr   error
	GetLinesErr error
}

func (m *mockCartRepo) GetLines(_ context.Context, _ string) ([]domain.CartLine, error) {
	return m.Lines, m.GetLinesErr
}

func (m *mockCartRepo) Upsert(_ context.Context, _, productID string, quantity int) error {
	m.Upserted = append(m.Upserted, productID+":"+strconv.Itoa(quantity))
	return m.UpsertErr
}

func (m *mockCartRepo) Remove(_ context.Context, _, productID string) error {
	m.Removed = append(m.Removed, productID)
	return m.RemoveErr
}

// mockWishlistRepo implements domain.WishlistRepository for testing.
type mockWishlistRepo struct {
	Products []domain.Product
	Added    []string
	Removed  []string
	Err      error
}

func (m *mockWishlistRepo) GetProducts(_ context.Context, _ string) ([]domain.Product, error) {
	return m.Products, m.Err
}

func (m *mockWishlistRepo) Add(_ context.Context, _, productID string) error {
	m.Added = append(m.Added, productID)
	return m.Err
}

func (m *mockWishlistRepo) Remove(_ context.Context, _, productID string) error {
	m.Removed = append(m.Removed, productID)
	return m.Err
}

// mockOrderRepo implements domain.OrderRepository for testing.
type mockOrderRepo struct {
	PlacedOrder     *domain.Order
	PlaceErr        error
	PlaceCalls      int
	LastShipping    string
	LastPayment     string
	Orders          []domain.Order
	OrderByID       *domain.Order
	UpdatedStatus   domain.OrderStatus
	UpdateStatusErr error
	Err             error
}

func (m *mockOrderRepo) PlaceOrder(_ context.Context, _, shippingAddress, paymentMethod string) (*domain.Order, error) {
	m.PlaceCalls++
	m.LastShipping = shippingAddress
	m.LastPayment = paymentMethod
	if m.PlaceErr != nil {
		return nil, m.PlaceErr
	}
	return m.PlacedOrder, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, _ string) (*domain.Order, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.OrderByID == nil {
		return nil, repository.ErrNotFound
	}
	return m.OrderByID, nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, _ string) ([]domain.Order, error) {
	return m.Orders, m.Err
}

func (m *mockOrderRepo) List(_ context.Context, _ domain.ListOrdersFilter) ([]domain.Order, int, error) {
	return m.Orders, len(m.Orders), m.Err
}

func (m *mockOrderRepo) ListRecent(_ context.Context, _ int) ([]domain.Order, error) {
	return m.Orders, m.Err
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ string, status domain.OrderStatus) (*domain.Order, error) {
	m.UpdatedStatus = status
	if m.UpdateStatusErr != nil {
		return nil, m.UpdateStatusErr
	}
	updated := *m.OrderByID
	updated.Status = status
	return &updated, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, _ string) error {
	return m.Err
}

func (m *mockOrderRepo) Count(_ context.Context) (int, error) {
	return len(m.Orders), m.Err
}

// mockBookingRepo implements domain.BookingRepository for testing.
type mockBookingRepo struct {
	CreatedBooking  *domain.TransportBooking // captures the booking passed to Create
	CreateErr       error
	Bookings        []domain.TransportBooking
	BookingByID     *domain.TransportBooking
	UpdatedStatus   domain.BookingStatus
	UpdateStatusErr error
	Err             error
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.TransportBooking) (*domain.TransportBooking, error) {
	m.CreatedBooking = booking
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return booking, nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, _ string) (*domain.TransportBooking, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.BookingByID == nil {
		return nil, repository.ErrNotFound
	}
	return m.BookingByID, nil
}

func (m *mockBookingRepo) ListByUserID(_ context.Context, _ string) ([]domain.TransportBooking, error) {
	return m.Bookings, m.Err
}

func (m *mockBookingRepo) ListAll(_ context.Context) ([]domain.TransportBooking, error) {
	return m.Bookings, m.Err
}

func (m *mockBookingRepo) ListRecent(_ context.Context, _ int) ([]domain.TransportBooking, error) {
	return m.Bookings, m.Err
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, _ string, status domain.BookingStatus) (*domain.TransportBooking, error) {
	m.UpdatedStatus = status
	if m.UpdateStatusErr != nil {
		return nil, m.UpdateStatusErr
	}
	updated := *m.BookingByID
	updated.Status = status
	return &updated, nil
}

func (m *mockBookingRepo) Delete(_ context.Context, _ string) error {
	return m.Err
}

func (m *mockBookingRepo) Count(_ context.Context) (int, error) {
	return len(m.Bookings), m.Err
}
