package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

func IsValidBookingStatus(status BookingStatus) bool {
	switch status {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	default:
		return false
	}
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled},
}

func CanTransitionBooking(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// BookingRatePerViss is the flat transport rate: floor(weight) x 200.
const BookingRatePerViss = 200

// TransportBooking schedules freight transport for a customer's goods.
// Unrelated to the order workflow; priced by weight alone.
type TransportBooking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	Phone            string        `json:"phone,omitempty"`
	TruckLabel       string        `json:"truckLabel"`
	WeightViss       int           `json:"weightViss"`
	Price            float64       `json:"price"`
	GoodsDescription string        `json:"goodsDescription"`
	Origin           string        `json:"origin"`
	Destination      string        `json:"destination"`
	PickupDate       *time.Time    `json:"pickupDate,omitempty"`
	PickupTime       string        `json:"pickupTime,omitempty"`
	Status           BookingStatus `json:"status"`
	User             *UserSummary  `json:"user,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *TransportBooking) (*TransportBooking, error)
	GetByID(ctx context.Context, id string) (*TransportBooking, error)
	ListByUserID(ctx context.Context, userID string) ([]TransportBooking, error)
	ListAll(ctx context.Context) ([]TransportBooking, error)
	ListRecent(ctx context.Context, limit int) ([]TransportBooking, error)
	UpdateStatus(ctx context.Context, id string, status BookingStatus) (*TransportBooking, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type BookingRequest struct {
	Phone            string
	TruckLabel       string
	WeightViss       float64
	GoodsDescription string
	Origin           string
	Destination      string
	PickupDate       *time.Time
	PickupTime       string
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, userID string, req BookingRequest) (*TransportBooking, error)
	ListBookings(ctx context.Context, userID string) ([]TransportBooking, error)
}
