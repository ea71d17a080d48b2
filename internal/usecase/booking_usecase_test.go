package usecase

import (
	"context"
	"testing"

	"jaggery_shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() domain.BookingRequest {
	return domain.BookingRequest{
		TruckLabel:       "6-wheel",
		WeightViss:       150,
		GoodsDescription: "jaggery blocks",
		Origin:           "Nyaung-U",
		Destination:      "Yangon",
	}
}

func newTestBookingUseCase(bookingRepo *mockBookingRepo, userRepo *mockUserRepo) domain.BookingUseCase {
	return NewBookingUseCase(bookingRepo, userRepo, testLogger())
}

func TestCreateBooking_Success(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{
		"user-1": {ID: "user-1", Phone: "0912345678"},
	}}
	uc := newTestBookingUseCase(bookingRepo, userRepo)

	booking, err := uc.CreateBooking(context.Background(), "user-1", validBookingRequest())

	require.NoError(t, err)
	assert.Equal(t, 150, booking.WeightViss)
	assert.Equal(t, float64(150*200), booking.Price)
	assert.Equal(t, domain.BookingPending, booking.Status)
	// Phone falls back to the user's stored number.
	assert.Equal(t, "0912345678", booking.Phone)
}

func TestCreateBooking_FractionalWeightFloorsPrice(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{"user-1": {ID: "user-1"}}}
	uc := newTestBookingUseCase(bookingRepo, userRepo)

	req := validBookingRequest()
	req.WeightViss = 10.9

	booking, err := uc.CreateBooking(context.Background(), "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, 10, booking.WeightViss)
	assert.Equal(t, float64(2000), booking.Price)
}

func TestCreateBooking_ExplicitPhoneWins(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{
		"user-1": {ID: "user-1", Phone: "0912345678"},
	}}
	uc := newTestBookingUseCase(bookingRepo, userRepo)

	req := validBookingRequest()
	req.Phone = "0998765432"

	booking, err := uc.CreateBooking(context.Background(), "user-1", req)

	require.NoError(t, err)
	assert.Equal(t, "0998765432", booking.Phone)
}

func TestCreateBooking_MissingFields(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{"user-1": {ID: "user-1"}}}
	uc := newTestBookingUseCase(bookingRepo, userRepo)

	req := validBookingRequest()
	req.Destination = "   "

	_, err := uc.CreateBooking(context.Background(), "user-1", req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Nil(t, bookingRepo.CreatedBooking)
}

func TestCreateBooking_InvalidWeight(t *testing.T) {
	bookingRepo := &mockBookingRepo{}
	userRepo := &mockUserRepo{UsersByID: map[string]*domain.User{"user-1": {ID: "user-1"}}}
	uc := newTestBookingUseCase(bookingRepo, userRepo)

	for _, weight := range []float64{0, -3} {
		req := validBookingRequest()
		req.WeightViss = weight

		_, err := uc.CreateBooking(context.Background(), "user-1", req)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "weightViss must be a positive number")
	}
}

func TestListBookings(t *testing.T) {
	bookingRepo := &mockBookingRepo{Bookings: []domain.TransportBooking{{ID: "booking-1"}}}
	uc := newTestBookingUseCase(bookingRepo, &mockUserRepo{})

	bookings, err := uc.ListBookings(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	_, err = uc.ListBookings(context.Background(), "")
	assert.Error(t, err)
}
