package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"jaggery_shop/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// asUser fakes the Authenticate middleware by priming the identity keys
// the handlers read.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("userEmail", userID+"@example.com")
		c.Next()
	}
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// mockOrderUseCase implements domain.OrderUseCase for handler tests.
type mockOrderUseCase struct {
	Order      *domain.Order
	Orders     []domain.Order
	PlaceErr   error
	ListErr    error
	LastUserID string
}

func (m *mockOrderUseCase) PlaceOrder(_ context.Context, userID, _, _ string) (*domain.Order, error) {
	m.LastUserID = userID
	if m.PlaceErr != nil {
		return nil, m.PlaceErr
	}
	return m.Order, nil
}

func (m *mockOrderUseCase) ListOrders(_ context.Context, userID string) ([]domain.Order, error) {
	m.LastUserID = userID
	return m.Orders, m.ListErr
}

// mockCartUseCase implements domain.CartUseCase for handler tests.
type mockCartUseCase struct {
	Lines        []domain.CartLine
	Err          error
	LastProduct  string
	LastQuantity int
	RemovedID    string
}

func (m *mockCartUseCase) GetCart(_ context.Context, _ string) ([]domain.CartLine, error) {
	return m.Lines, m.Err
}

func (m *mockCartUseCase) UpdateItem(_ context.Context, _, productID string, quantity int) error {
	m.LastProduct = productID
	m.LastQuantity = quantity
	return m.Err
}

func (m *mockCartUseCase) RemoveItem(_ context.Context, _, productID string) error {
	m.RemovedID = productID
	return m.Err
}

// mockCatalogUseCase implements domain.CatalogUseCase for handler tests.
type mockCatalogUseCase struct {
	Products     []domain.Product
	Product      *domain.Product
	Err          error
	LastCategory string
	LastSearch   string
}

func (m *mockCatalogUseCase) BrowseProducts(_ context.Context, category, search string) ([]domain.Product, error) {
	m.LastCategory = category
	m.LastSearch = search
	return m.Products, m.Err
}

func (m *mockCatalogUseCase) GetFeatured(_ context.Context) ([]domain.Product, error) {
	return m.Products, m.Err
}

func (m *mockCatalogUseCase) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Product, nil
}

// mockAuthUseCase implements domain.AuthUseCase for handler tests.
type mockAuthUseCase struct {
	User  *domain.User
	Token string
	Err   error
}

func (m *mockAuthUseCase) Register(_ context.Context, _, _, _, _ string) (*domain.User, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	return m.User, m.Token, nil
}

func (m *mockAuthUseCase) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if m.Err != nil {
		return nil, "", m.Err
	}
	return m.User, m.Token, nil
}

func (m *mockAuthUseCase) UpdateProfile(_ context.Context, _, name, phone string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &domain.User{ID: m.User.ID, Name: name, Phone: phone}, nil
}

func (m *mockAuthUseCase) GetUser(_ context.Context, _ string) (*domain.User, error) {
	return m.User, m.Err
}
