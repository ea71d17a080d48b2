package usecase

import (
	"context"
	"errors"
	"strings"

	"jaggery_shop/internal/domain"

	"github.com/sirupsen/logrus"
)

var _ domain.CatalogUseCase = (*catalogUseCase)(nil)

type catalogUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewCatalogUseCase(repo domain.ProductRepository, logger *logrus.Logger) domain.CatalogUseCase {
	return &catalogUseCase{productRepo: repo, log: logger}
}

// BrowseProducts returns the storefront listing. A search query takes
// precedence over the category filter; category "All" or empty means no
// filter.
func (uc *catalogUseCase) BrowseProducts(ctx context.Context, category, search string) ([]domain.Product, error) {
	search = strings.TrimSpace(search)

	if search != "" {
		uc.log.Infof("Use Case: Searching products for query %q", search)
		return uc.productRepo.Search(ctx, search)
	}

	if category == "" || category == "All" {
		return uc.productRepo.GetAll(ctx)
	}

	uc.log.Infof("Use Case: Listing products in category %q", category)
	return uc.productRepo.GetByCategory(ctx, category)
}

func (uc *catalogUseCase) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return uc.productRepo.GetFeatured(ctx)
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("invalid product ID")
	}
	return uc.productRepo.GetByID(ctx, id)
}
