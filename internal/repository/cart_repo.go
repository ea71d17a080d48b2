package repository

import (
	"context"
	"database/sql"
	"fmt"

	"jaggery_shop/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresCartRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCartRepository(db *sql.DB, logger *logrus.Logger) domain.CartRepository {
	return &postgresCartRepository{db: db, log: logger}
}

func (r *postgresCartRepository) GetLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	query := fmt.Sprintf(`
        SELECT %s, c.quantity
        FROM cart_items c
        JOIN products p ON p.id = c.product_id
        WHERE c.user_id = $1
        ORDER BY p.name
    `, prefixColumns("p", productColumns))

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Errorf("Repo: failed to query cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var line domain.CartLine
		err := rows.Scan(
			&line.ID, &line.Name, &line.Description, &line.Price, &line.OriginalPrice,
			&line.Image, &line.Category, &line.Rating, &line.Reviews, &line.InStock,
			&line.Weight, pq.Array(&line.Ingredients), pq.Array(&line.Benefits),
			&line.IsFeatured, &line.CreatedAt, &line.UpdatedAt,
			&line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning cart line: %w", err)
		}
		if line.Ingredients == nil {
			line.Ingredients = []string{}
		}
		if line.Benefits == nil {
			line.Benefits = []string{}
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	r.log.Debugf("Repo: retrieved %d cart lines for user %s", len(lines), userID)
	return lines, nil
}

// Upsert sets the quantity for (userID, productID), inserting the row when
// absent. Quantities are absolute, not deltas, matching the cart endpoint.
func (r *postgresCartRepository) Upsert(ctx context.Context, userID, productID string, quantity int) error {
	query := `
        INSERT INTO cart_items (user_id, product_id, quantity)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
    `
	_, err := r.db.ExecContext(ctx, query, userID, productID, quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repo: cart upsert references missing product %s: %v", productID, err)
			return ErrNotFound
		}
		r.log.Errorf("Repo: failed to upsert cart item (%s, %s): %v", userID, productID, err)
		return fmt.Errorf("could not update cart: %w", err)
	}

	r.log.Infof("Repo: cart item set to quantity %d (user %s, product %s)", quantity, userID, productID)
	return nil
}

func (r *postgresCartRepository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err != nil {
		r.log.Errorf("Repo: failed to remove cart item (%s, %s): %v", userID, productID, err)
		return fmt.Errorf("could not remove cart item: %w", err)
	}

	r.log.Infof("Repo: cart item removed (user %s, product %s)", userID, productID)
	return nil
}
