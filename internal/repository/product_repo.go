package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jaggery_shop/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{db: db, log: logger}
}

const productColumns = `id, name, description, price, original_price, image, category,
        rating, reviews, in_stock, weight, ingredients, benefits, is_featured,
        created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Category,
		&p.Rating,
		&p.Reviews,
		&p.InStock,
		&p.Weight,
		pq.Array(&p.Ingredients),
		pq.Array(&p.Benefits),
		&p.IsFeatured,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	return p, nil
}

func (r *postgresProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Errorf("Repo: product query failed: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to get product %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve product: %w", err)
	}
	return p, nil
}

func (r *postgresProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products ORDER BY created_at DESC", productColumns)
	return r.queryProducts(ctx, query)
}

func (r *postgresProductRepository) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE category = $1 ORDER BY created_at DESC",
		productColumns,
	)
	return r.queryProducts(ctx, query, category)
}

func (r *postgresProductRepository) Search(ctx context.Context, search string) ([]domain.Product, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM products
        WHERE name ILIKE $1 OR description ILIKE $1
        ORDER BY created_at DESC
    `, productColumns)
	return r.queryProducts(ctx, query, "%"+search+"%")
}

func (r *postgresProductRepository) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE is_featured ORDER BY created_at DESC",
		productColumns,
	)
	return r.queryProducts(ctx, query)
}

func (r *postgresProductRepository) List(ctx context.Context, filter domain.ListProductsFilter) ([]domain.Product, int, error) {
	page, limit := normalizePage(filter.Page, filter.Limit)

	conds := []string{}
	args := []any{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products"+where, args...).Scan(&total); err != nil {
		r.log.Errorf("Repo: failed to count products: %v", err)
		return nil, 0, fmt.Errorf("could not count products: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)-1, len(args),
	)

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Ingredients == nil {
		product.Ingredients = []string{}
	}
	if product.Benefits == nil {
		product.Benefits = []string{}
	}

	query := `
        INSERT INTO products
            (id, name, description, price, original_price, image, category,
             rating, reviews, in_stock, weight, ingredients, benefits, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.OriginalPrice, product.Image, product.Category,
		product.Rating, product.Reviews, product.InStock, product.Weight,
		pq.Array(product.Ingredients), pq.Array(product.Benefits), product.IsFeatured,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		r.log.Errorf("Repo: failed to create product %s: %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Repo: product created with ID %s (%s)", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET name = $1, description = $2, price = $3, original_price = $4,
            image = $5, category = $6, rating = $7, reviews = $8, in_stock = $9,
            weight = $10, ingredients = $11, benefits = $12, is_featured = $13,
            updated_at = NOW()
        WHERE id = $14
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.OriginalPrice,
		product.Image, product.Category, product.Rating, product.Reviews,
		product.InStock, product.Weight, pq.Array(product.Ingredients),
		pq.Array(product.Benefits), product.IsFeatured, product.ID,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repo: product %s not found for update", product.ID)
			return nil, ErrNotFound
		}
		r.log.Errorf("Repo: failed to update product %s: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	r.log.Infof("Repo: product %s updated", product.ID)
	return product, nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			r.log.Warnf("Repo: product %s is referenced by orders, cannot delete: %v", id, err)
			return fmt.Errorf("product is referenced by existing orders: %w", err)
		}
		r.log.Errorf("Repo: failed to delete product %s: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	r.log.Infof("Repo: product %s deleted", id)
	return nil
}

// prefixColumns qualifies each column in a comma-separated list with a table
// alias, for joins that select the full product row.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}

func (r *postgresProductRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&total); err != nil {
		return 0, fmt.Errorf("could not count products: %w", err)
	}
	return total, nil
}
