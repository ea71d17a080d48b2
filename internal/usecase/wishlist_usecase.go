package usecase

import (
	"context"
	"errors"

	"jaggery_shop/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.WishlistUseCase = (*wishlistUseCase)(nil)

type wishlistUseCase struct {
	wishlistRepo domain.WishlistRepository
	log          *logrus.Logger
}

func NewWishlistUseCase(repo domain.WishlistRepository, logger *logrus.Logger) domain.WishlistUseCase {
	return &wishlistUseCase{wishlistRepo: repo, log: logger}
}

func (uc *wishlistUseCase) GetWishlist(ctx context.Context, userID string) ([]domain.Product, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}
	return uc.wishlistRepo.GetProducts(ctx, userID)
}

func (uc *wishlistUseCase) AddItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.New("invalid user ID")
	}
	if productID == "" {
		return errors.New("productId is required")
	}
	return uc.wishlistRepo.Add(ctx, userID, productID)
}

func (uc *wishlistUseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	if userID == "" {
		return errors.New("invalid user ID")
	}
	if productID == "" {
		return errors.New("productId is required")
	}
	return uc.wishlistRepo.Remove(ctx, userID, productID)
}
