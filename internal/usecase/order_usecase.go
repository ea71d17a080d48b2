package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/repository"

	"github.com/sirupsen/logrus"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orderRepo domain.OrderRepository
	log       *logrus.Logger
}

func NewOrderUseCase(repo domain.OrderRepository, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{orderRepo: repo, log: logger}
}

// PlaceOrder converts the caller's cart into a new order. Validation
// failures (blank address or payment method, empty cart) leave the store
// untouched; persistence failures roll back atomically in the repository,
// so the caller may safely retry the whole call.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, userID, shippingAddress, paymentMethod string) (*domain.Order, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	paymentMethod = strings.TrimSpace(paymentMethod)

	if userID == "" {
		return nil, errors.New("invalid user ID")
	}
	if shippingAddress == "" || paymentMethod == "" {
		uc.log.Warnf("Use Case: Order placement for user %s rejected - missing shipping address or payment method", userID)
		return nil, errors.New("shippingAddress and paymentMethod required")
	}

	uc.log.Infof("Use Case: Placing order for user %s", userID)

	order, err := uc.orderRepo.PlaceOrder(ctx, userID, shippingAddress, paymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrCartEmpty) {
			uc.log.Warnf("Use Case: Order placement for user %s rejected - cart is empty", userID)
			return nil, err
		}
		if repository.IsSerializationFailure(err) {
			// A concurrent checkout won the cart; the caller may retry and
			// will then see an empty cart.
			uc.log.Warnf("Use Case: Order placement for user %s lost a serialization conflict: %v", userID, err)
			return nil, fmt.Errorf("order could not be committed, please retry: %w", err)
		}
		uc.log.Errorf("Use Case: Repository failed to place order for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	uc.log.Infof("Use Case: Order %s placed for user %s (total %.2f, %d items)",
		order.ID, userID, order.TotalAmount, len(order.Items))
	return order, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	orders, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}

	uc.log.Debugf("Use Case: Retrieved %d orders for user %s", len(orders), userID)
	return orders, nil
}
