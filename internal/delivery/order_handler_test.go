package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOrderRouter(uc domain.OrderUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/api", asUser("user-1"))
	NewOrderHandler(uc, testLogger()).RegisterRoutes(authed)
	return router
}

func TestPlaceOrderHandler_Success(t *testing.T) {
	uc := &mockOrderUseCase{Order: &domain.Order{ID: "order-1", TotalAmount: 52500}}
	router := newOrderRouter(uc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/orders", gin.H{
		"shippingAddress": "12 Strand Rd, Yangon",
		"paymentMethod":   "COD",
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Order created", body["message"])
	assert.Equal(t, "order-1", body["orderId"])
	assert.Equal(t, "user-1", uc.LastUserID)
}

func TestPlaceOrderHandler_BadBody(t *testing.T) {
	router := newOrderRouter(&mockOrderUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "shippingAddress and paymentMethod required", decodeBody(t, w)["error"])
}

func TestPlaceOrderHandler_EmptyCart(t *testing.T) {
	router := newOrderRouter(&mockOrderUseCase{PlaceErr: repository.ErrCartEmpty})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/orders", gin.H{
		"shippingAddress": "12 Strand Rd",
		"paymentMethod":   "COD",
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cart is empty", decodeBody(t, w)["error"])
}

func TestListOrdersHandler(t *testing.T) {
	uc := &mockOrderUseCase{Orders: []domain.Order{{ID: "order-1"}, {ID: "order-2"}}}
	router := newOrderRouter(uc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["orders"], 2)
}
