package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const notFoundMarker = "notfound"

// CachedProductRepository is a cache-aside decorator over the real product
// repository. Redis failures degrade to plain DB reads; they never fail a
// request. Admin writes invalidate the affected keys.
type CachedProductRepository struct {
	realRepo domain.ProductRepository
	redis    *redis.Client
	log      *logrus.Logger
	ttl      time.Duration
}

func NewCachedProductRepository(realRepo domain.ProductRepository, rdb *redis.Client, logger *logrus.Logger) *CachedProductRepository {
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    rdb,
		log:      logger,
		ttl:      5 * time.Minute,
	}
}

func productKey(id string) string        { return "product:" + id }
func categoryKey(category string) string { return "products:category:" + category }

const (
	allKey      = "products:all"
	featuredKey = "products:featured"
)

func (c *CachedProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}
		var product domain.Product
		if err := json.Unmarshal(data, &product); err != nil {
			c.log.Warnf("Cache: failed to unmarshal cached product (continuing with DB): %v", err)
			break
		}
		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		c.log.Warnf("Cache: redis error (continuing with DB): %v", err)
	}

	product, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, 1*time.Minute).Err(); setErr != nil {
				c.log.Warnf("Cache: failed to cache notfound marker: %v", setErr)
			}
		}
		return nil, err
	}

	c.store(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return c.cachedList(ctx, allKey, c.realRepo.GetAll)
}

func (c *CachedProductRepository) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return c.cachedList(ctx, categoryKey(category), func(ctx context.Context) ([]domain.Product, error) {
		return c.realRepo.GetByCategory(ctx, category)
	})
}

func (c *CachedProductRepository) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return c.cachedList(ctx, featuredKey, c.realRepo.GetFeatured)
}

// Search results are not cached: the query space is unbounded and searches
// are rare next to category browsing.
func (c *CachedProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return c.realRepo.Search(ctx, query)
}

func (c *CachedProductRepository) List(ctx context.Context, filter domain.ListProductsFilter) ([]domain.Product, int, error) {
	return c.realRepo.List(ctx, filter)
}

func (c *CachedProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	created, err := c.realRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, created.ID, created.Category)
	return created, nil
}

func (c *CachedProductRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	old, err := c.realRepo.GetByID(ctx, product.ID)
	if err == nil && old.Category != product.Category {
		c.invalidate(ctx, product.ID, old.Category)
	}

	updated, err := c.realRepo.Update(ctx, product)
	if err != nil {
		c.invalidate(ctx, product.ID, product.Category)
		return nil, err
	}
	c.invalidate(ctx, updated.ID, updated.Category)
	return updated, nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) error {
	category := ""
	if old, err := c.realRepo.GetByID(ctx, id); err == nil {
		category = old.Category
	}

	if err := c.realRepo.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id, category)
	return nil
}

func (c *CachedProductRepository) Count(ctx context.Context) (int, error) {
	return c.realRepo.Count(ctx)
}

func (c *CachedProductRepository) cachedList(ctx context.Context, key string, load func(context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		c.log.Warnf("Cache: failed to unmarshal cached list %s (continuing with DB)", key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warnf("Cache: redis error for %s (continuing with DB): %v", key, err)
	}

	products, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, products)
	return products, nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Cache: failed to marshal %s: %v", key, err)
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warnf("Cache: failed to store %s: %v", key, err)
	}
}

func (c *CachedProductRepository) invalidate(ctx context.Context, productID, category string) {
	keys := []string{productKey(productID), allKey, featuredKey}
	if category != "" {
		keys = append(keys, categoryKey(category))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Cache: failed to invalidate %v: %v", keys, err)
	}
	c.log.Debugf("Cache: invalidated keys %v", keys)
}
