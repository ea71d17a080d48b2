package domain

import "context"

// CartItem is one row in a user's cart. A quantity of zero or less is never
// stored; such updates delete the row instead.
type CartItem struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a cart item joined to its product, the shape returned by the
// cart endpoint. The product fields are flattened into the line.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

type CartRepository interface {
	GetLines(ctx context.Context, userID string) ([]CartLine, error)
	Upsert(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
}

type CartUseCase interface {
	GetCart(ctx context.Context, userID string) ([]CartLine, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

type WishlistRepository interface {
	GetProducts(ctx context.Context, userID string) ([]Product, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

type WishlistUseCase interface {
	GetWishlist(ctx context.Context, userID string) ([]Product, error)
	AddItem(ctx context.Context, userID, productID string) error
	RemoveItem(ctx context.Context, userID, productID string) error
}
