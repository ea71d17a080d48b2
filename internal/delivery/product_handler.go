package delivery

import (
	"net/http"

	"jaggery_shop/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase domain.CatalogUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc domain.CatalogUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{useCase: uc, log: logger}
}

func (h *ProductHandler) RegisterRoutes(public gin.IRouter) {
	products := public.Group("/products")
	{
		products.GET("", h.BrowseProducts)
		products.GET("/categories", h.GetCategories)
		products.GET("/featured", h.GetFeatured)
		products.GET("/:id", h.GetProduct)
	}
}

func (h *ProductHandler) BrowseProducts(c *gin.Context) {
	category := c.DefaultQuery("category", "All")
	search := c.Query("search")

	products, err := h.useCase.BrowseProducts(c.Request.Context(), category, search)
	if err != nil {
		h.log.Errorf("Handler: Failed to browse products: %v", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": domain.Categories})
}

func (h *ProductHandler) GetFeatured(c *gin.Context) {
	products, err := h.useCase.GetFeatured(c.Request.Context())
	if err != nil {
		h.log.Errorf("Handler: Failed to fetch featured products: %v", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch featured products")
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		status := mapErrorToStatus(err)
		if status == http.StatusNotFound {
			errorResponse(c, status, "Product not found")
			return
		}
		h.log.Errorf("Handler: Failed to fetch product %s: %v", id, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}
