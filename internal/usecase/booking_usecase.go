package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"jaggery_shop/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.BookingUseCase = (*bookingUseCase)(nil)

type bookingUseCase struct {
	bookingRepo domain.BookingRepository
	userRepo    domain.UserRepository
	log         *logrus.Logger
}

func NewBookingUseCase(repo domain.BookingRepository, userRepo domain.UserRepository, logger *logrus.Logger) domain.BookingUseCase {
	return &bookingUseCase{
		bookingRepo: repo,
		userRepo:    userRepo,
		log:         logger,
	}
}

// CreateBooking schedules a freight transport for the user's goods. The
// price is the flat per-viss rate on the floored weight; fractional viss are
// not charged.
func (uc *bookingUseCase) CreateBooking(ctx context.Context, userID string, req domain.BookingRequest) (*domain.TransportBooking, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	req.TruckLabel = strings.TrimSpace(req.TruckLabel)
	req.GoodsDescription = strings.TrimSpace(req.GoodsDescription)
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)

	if req.TruckLabel == "" || req.GoodsDescription == "" || req.Origin == "" || req.Destination == "" {
		uc.log.Warnf("Use Case: Booking for user %s rejected - missing required fields", userID)
		return nil, errors.New("missing required fields")
	}
	if math.IsNaN(req.WeightViss) || math.IsInf(req.WeightViss, 0) || req.WeightViss <= 0 {
		return nil, errors.New("weightViss must be a positive number")
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		uc.log.Warnf("Use Case: Booking failed - could not load user %s: %v", userID, err)
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = user.Phone
	}

	weight := int(math.Floor(req.WeightViss))
	booking := &domain.TransportBooking{
		UserID:           userID,
		Phone:            phone,
		TruckLabel:       req.TruckLabel,
		WeightViss:       weight,
		Price:            float64(weight * domain.BookingRatePerViss),
		GoodsDescription: req.GoodsDescription,
		Origin:           req.Origin,
		Destination:      req.Destination,
		PickupDate:       req.PickupDate,
		PickupTime:       req.PickupTime,
		Status:           domain.BookingPending,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create booking for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	uc.log.Infof("Use Case: Transport booking %s created for user %s (%d viss, price %.0f)",
		created.ID, userID, created.WeightViss, created.Price)
	return created, nil
}

func (uc *bookingUseCase) ListBookings(ctx context.Context, userID string) ([]domain.TransportBooking, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	bookings, err := uc.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve bookings: %w", err)
	}
	return bookings, nil
}
