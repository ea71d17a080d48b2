package usecase

import (
	"context"
	"errors"

	"jaggery_shop/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.CartUseCase = (*cartUseCase)(nil)

type cartUseCase struct {
	cartRepo domain.CartRepository
	log      *logrus.Logger
}

func NewCartUseCase(repo domain.CartRepository, logger *logrus.Logger) domain.CartUseCase {
	return &cartUseCase{cartRepo: repo, log: logger}
}

func (uc *cartUseCase) GetCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}
	return uc.cartRepo.GetLines(ctx, userID)
}

// UpdateItem sets the absolute quantity of a product in the cart. A quantity
// of zero or less removes the row entirely; the cart never stores
// non-positive quantities.
func (uc *cartUseCase) UpdateItem(ctx context.Context, userID, productID string, quantity int) error {
	if userID == "" {
		return errors.New("invalid user ID")
	}
	if productID == "" {
		return errors.New("productId is required")
	}

	if quantity <= 0 {
		uc.log.Infof("Use Case: Non-positive quantity %d removes product %s from cart of user %s",
			quantity, productID, userID)
		return uc.cartRepo.Remove(ctx, userID, productID)
	}

	return uc.cartRepo.Upsert(ctx, userID, productID, quantity)
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.New("invalid user ID")
	}
	if productID == "" {
		return errors.New("productId is required")
	}
	return uc.cartRepo.Remove(ctx, userID, productID)
}
