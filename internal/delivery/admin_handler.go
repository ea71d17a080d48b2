package delivery

import (
	"net/http"
	"strconv"

	"jaggery_shop/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	useCase domain.AdminUseCase
	log     *logrus.Logger
}

func NewAdminHandler(uc domain.AdminUseCase, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{useCase: uc, log: logger}
}

// RegisterRoutes expects a group already behind the admin gate.
func (h *AdminHandler) RegisterRoutes(admin gin.IRouter) {
	admin.GET("/dashboard", h.Dashboard)

	products := admin.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}

	orders := admin.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)
	}

	transport := admin.Group("/transport")
	{
		transport.GET("", h.ListBookings)
		transport.GET("/:id", h.GetBooking)
		transport.PUT("/:id", h.UpdateBookingStatus)
		transport.DELETE("/:id", h.DeleteBooking)
	}

	users := admin.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.PUT("/:id", h.UpdateUserRole)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.useCase.Dashboard(c.Request.Context())
	if err != nil {
		h.log.Errorf("Handler: Failed to build admin dashboard: %v", err)
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	filter := domain.ListProductsFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}

	products, pagination, err := h.useCase.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.log.Errorf("Handler: Failed to list products for admin: %v", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Weight        string   `json:"weight"`
	Ingredients   []string `json:"ingredients"`
	Benefits      []string `json:"benefits"`
	IsFeatured    bool     `json:"isFeatured"`
	InStock       *bool    `json:"inStock"`
}

func (req *ProductRequest) toProduct() *domain.Product {
	// inStock defaults to true when omitted, per the admin console contract.
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	benefits := req.Benefits
	if benefits == nil {
		benefits = []string{}
	}

	return &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Image:         req.Image,
		Category:      req.Category,
		Rating:        req.Rating,
		Reviews:       req.Reviews,
		InStock:       inStock,
		Weight:        req.Weight,
		Ingredients:   ingredients,
		Benefits:      benefits,
		IsFeatured:    req.IsFeatured,
	}
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), req.toProduct())
	if err != nil {
		h.log.Errorf("Handler: Failed to create product: %v", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product := req.toProduct()
	product.ID = c.Param("id")

	updated, err := h.useCase.UpdateProduct(c.Request.Context(), product)
	if err != nil {
		h.log.Warnf("Handler: Failed to update product %s: %v", product.ID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		h.log.Warnf("Handler: Failed to delete product %s: %v", id, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter := domain.ListOrdersFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	orders, pagination, err := h.useCase.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.log.Errorf("Handler: Failed to list orders for admin: %v", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: 'status' field is required")
		return
	}

	order, err := h.useCase.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		h.log.Warnf("Handler: Failed to update status for order %s: %v", id, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.DeleteOrder(c.Request.Context(), id); err != nil {
		h.log.Warnf("Handler: Failed to delete order %s: %v", id, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.useCase.ListBookings(c.Request.Context())
	if err != nil {
		h.log.Errorf("Handler: Failed to list bookings for admin: %v", err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *AdminHandler) GetBooking(c *gin.Context) {
	booking, err := h.useCase.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id := c.Param("id")

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: 'status' field is required")
		return
	}

	booking, err := h.useCase.UpdateBookingStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		h.log.Warnf("Handler: Failed to update status for booking %s: %v", id, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.DeleteBooking(c.Request.Context(), id); err != nil {
		h.log.Warnf("Handler: Failed to delete booking %s: %v", id, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transport booking deleted successfully"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := domain.ListUsersFilter{
		Search: c.Query("search"),
		Role:   domain.Role(c.Query("role")),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	}

	users, pagination, err := h.useCase.ListUsers(c.Request.Context(), filter)
	if err != nil {
		h.log.Errorf("Handler: Failed to list users for admin: %v", err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id := c.Param("id")

	var req RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: 'role' field is required")
		return
	}

	user, err := h.useCase.UpdateUserRole(c.Request.Context(), id, domain.Role(req.Role))
	if err != nil {
		h.log.Warnf("Handler: Failed to update role for user %s: %v", id, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.useCase.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Warnf("Handler: Failed to delete user %s: %v", id, err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
