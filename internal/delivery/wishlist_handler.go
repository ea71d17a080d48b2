package delivery

import (
	"net/http"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WishlistHandler struct {
	useCase domain.WishlistUseCase
	log     *logrus.Logger
}

func NewWishlistHandler(uc domain.WishlistUseCase, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{useCase: uc, log: logger}
}

func (h *WishlistHandler) RegisterRoutes(authed gin.IRouter) {
	wishlist := authed.Group("/wishlist")
	{
		wishlist.GET("", h.GetWishlist)
		wishlist.POST("", h.AddItem)
		wishlist.DELETE("", h.RemoveItem)
	}
}

func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID := middleware.UserID(c)

	products, err := h.useCase.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Handler: Failed to fetch wishlist for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": products})
}

type WishlistAddRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *WishlistHandler) AddItem(c *gin.Context) {
	userID := middleware.UserID(c)

	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "productId required")
		return
	}

	if err := h.useCase.AddItem(c.Request.Context(), userID, req.ProductID); err != nil {
		h.log.Warnf("Handler: Wishlist add failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to wishlist"})
}

func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	userID := middleware.UserID(c)

	productID := c.Query("productId")
	if productID == "" {
		errorResponse(c, http.StatusBadRequest, "productId required")
		return
	}

	if err := h.useCase.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		h.log.Warnf("Handler: Wishlist removal failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
