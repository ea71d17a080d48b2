package delivery

import (
	"net/http"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	useCase domain.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc domain.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{useCase: uc, log: logger}
}

func (h *CartHandler) RegisterRoutes(authed gin.IRouter) {
	cart := authed.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.UpdateItem)
		cart.DELETE("", h.RemoveItem)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID := middleware.UserID(c)

	lines, err := h.useCase.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Handler: Failed to fetch cart for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": lines})
}

type CartUpdateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "productId and quantity required")
		return
	}

	if err := h.useCase.UpdateItem(c.Request.Context(), userID, req.ProductID, *req.Quantity); err != nil {
		h.log.Warnf("Handler: Cart update failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := middleware.UserID(c)

	productID := c.Query("productId")
	if productID == "" {
		errorResponse(c, http.StatusBadRequest, "productId required")
		return
	}

	if err := h.useCase.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		h.log.Warnf("Handler: Cart removal failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}
