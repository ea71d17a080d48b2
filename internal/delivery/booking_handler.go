package delivery

import (
	"net/http"
	"time"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	useCase domain.BookingUseCase
	log     *logrus.Logger
}

func NewBookingHandler(uc domain.BookingUseCase, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{useCase: uc, log: logger}
}

func (h *BookingHandler) RegisterRoutes(authed gin.IRouter) {
	bookings := authed.Group("/transportation/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
	}
}

type CreateBookingRequest struct {
	Phone            string  `json:"phone"`
	TruckLabel       string  `json:"truckLabel"`
	WeightViss       float64 `json:"weightViss"`
	GoodsDescription string  `json:"goodsDescription"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	PickupDate       string  `json:"pickupDate"`
	PickupTime       string  `json:"pickupTime"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var pickupDate *time.Time
	if req.PickupDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			if parsed, err = time.Parse(time.RFC3339, req.PickupDate); err != nil {
				errorResponse(c, http.StatusBadRequest, "Invalid pickupDate format")
				return
			}
		}
		pickupDate = &parsed
	}

	booking, err := h.useCase.CreateBooking(c.Request.Context(), userID, domain.BookingRequest{
		Phone:            req.Phone,
		TruckLabel:       req.TruckLabel,
		WeightViss:       req.WeightViss,
		GoodsDescription: req.GoodsDescription,
		Origin:           req.Origin,
		Destination:      req.Destination,
		PickupDate:       pickupDate,
		PickupTime:       req.PickupTime,
	})
	if err != nil {
		h.log.Warnf("Handler: Booking creation failed for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	h.log.Infof("Handler: Booking %s created for user %s", booking.ID, userID)
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := middleware.UserID(c)

	bookings, err := h.useCase.ListBookings(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorf("Handler: Failed to list bookings for user %s: %v", userID, err)
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
