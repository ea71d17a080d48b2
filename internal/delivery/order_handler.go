package delivery

import (
	"net/http"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{useCase: uc, log: logger}
}

func (h *OrderHandler) RegisterRoutes(authed gin.IRouter) {
	orders := authed.Group("/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders)
	}
}

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	PaymentMethod   string `json:"paymentMethod"`
}

// PlaceOrder converts the caller's cart into an order. Field and cart
// validation yields 400, persistence failure 500; on success the cart is
// empty and the new order's ID is returned.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID := middleware.UserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "shippingAddress and paymentMethod required")
		return
	}

	order, err := h.useCase.PlaceOrder(c.Request.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		h.log.Warnf("Handler: Order placement failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	h.log.Infof("Handler: Order %s created for user %s", order.ID, userID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created",
		"orderId": order.ID,
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID := middleware.UserID(c)

	orders, err := h.useCase.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Handler: Failed to list orders for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
