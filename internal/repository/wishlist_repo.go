package repository

import (
	"context"
	"database/sql"
	"fmt"

	"jaggery_shop/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresWishlistRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresWishlistRepository(db *sql.DB, logger *logrus.Logger) domain.WishlistRepository {
	return &postgresWishlistRepository{db: db, log: logger}
}

func (r *postgresWishlistRepository) GetProducts(ctx context.Context, userID string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM wishlist_items w
        JOIN products p ON p.id = w.product_id
        WHERE w.user_id = $1
        ORDER BY p.name
    `, prefixColumns("p", productColumns))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Repo: failed to query wishlist for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve wishlist: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice,
			&p.Image, &p.Category, &p.Rating, &p.Reviews, &p.InStock,
			&p.Weight, pq.Array(&p.Ingredients), pq.Array(&p.Benefits),
			&p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning wishlist product: %w", err)
		}
		if p.Ingredients == nil {
			p.Ingredients = []string{}
		}
		if p.Benefits == nil {
			p.Benefits = []string{}
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist products: %w", err)
	}

	return products, nil
}

// Add is idempotent: adding a product already on the wishlist is a no-op.
func (r *postgresWishlistRepository) Add(ctx context.Context, userID, productID string) error {
	query := `
        INSERT INTO wishlist_items (user_id, product_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, product_id) DO NOTHING
    `
	_, err := r.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repo: wishlist add references missing product %s: %v", productID, err)
			return ErrNotFound
		}
		r.log.Errorf("Repo: failed to add wishlist item (%s, %s): %v", userID, productID, err)
		return fmt.Errorf("could not add to wishlist: %w", err)
	}

	r.log.Infof("Repo: wishlist item added (user %s, product %s)", userID, productID)
	return nil
}

func (r *postgresWishlistRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		r.log.Errorf("Repo: failed to remove wishlist item (%s, %s): %v", userID, productID, err)
		return fmt.Errorf("could not remove from wishlist: %w", err)
	}

	r.log.Infof("Repo: wishlist item removed (user %s, product %s)", userID, productID)
	return nil
}
