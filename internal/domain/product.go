package domain

import (
	"context"
	"time"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	InStock       bool      `json:"inStock"`
	Weight        string    `json:"weight"`
	Ingredients   []string  `json:"ingredients"`
	Benefits      []string  `json:"benefits"`
	IsFeatured    bool      `json:"isFeatured"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Categories is the fixed storefront category list; "All" means no filter.
var Categories = []string{
	"All",
	"Organic Jaggery",
	"Palm Jaggery",
	"Traditional Sweets",
	"Jaggery Powder",
	"Gift Packs",
}

type ListProductsFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	GetAll(ctx context.Context) ([]Product, error)
	GetByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	GetFeatured(ctx context.Context) ([]Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]Product, int, error)
	Create(ctx context.Context, product *Product) (*Product, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type CatalogUseCase interface {
	BrowseProducts(ctx context.Context, category, search string) ([]Product, error)
	GetFeatured(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}
