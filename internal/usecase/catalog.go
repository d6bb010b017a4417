package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

const derivedTTL = cache.TTLDerived * time.Second

// CatalogUsecase serves product reads through the cache with Postgres as
// the source of truth, and invalidates per-product entries on writes.
type CatalogUsecase struct {
	products repository.ProductRepository
	store    cache.Store
	logger   *slog.Logger
}

func NewCatalogUsecase(products repository.ProductRepository, store cache.Store, logger *slog.Logger) *CatalogUsecase {
	return &CatalogUsecase{
		products: products,
		store:    store,
		logger:   logger.With("component", "catalog"),
	}
}

// GetProduct returns the cached projection for id, falling back to Postgres
// on a miss and repopulating the cache for an hour.
func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (*domain.ProductSummary, error) {
	key := cache.ProductKey(id)

	var cached domain.ProductSummary
	if u.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	product, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	summary := product.Summary()
	u.cacheSet(ctx, key, summary)
	return &summary, nil
}

// ListProducts is the read-through behind GET /products, keyed by the fixed
// "products" key.
func (u *CatalogUsecase) ListProducts(ctx context.Context) ([]domain.ProductSummary, error) {
	key := cache.ProductsKey()

	var cached []domain.ProductSummary
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := u.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	u.cacheSet(ctx, key, summaries)
	return summaries, nil
}

// RefreshProductList reloads the full listing from Postgres and rewrites
// the "products" entry unconditionally, restarting its TTL. Used by the
// cache warmer; plain reads go through ListProducts.
func (u *CatalogUsecase) RefreshProductList(ctx context.Context) error {
	products, err := u.products.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	u.cacheSet(ctx, cache.ProductsKey(), summaries)
	return nil
}

// Search matches query case-insensitively against name, description and
// category. Results are cached under the literal query text.
func (u *CatalogUsecase) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	key := cache.SearchKey(query)

	var cached []domain.SearchResult
	if u.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	products, err := u.products.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(products))
	for i := range products {
		results = append(results, products[i].SearchResult())
	}
	u.cacheSet(ctx, key, results)
	return results, nil
}

// ListByCategory serves the fixed category pages (/teas, /snacks, ...).
// These hit Postgres directly, as the storefront always has.
func (u *CatalogUsecase) ListByCategory(ctx context.Context, category string) ([]domain.ProductSummary, error) {
	products, err := u.products.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, products[i].Summary())
	}
	return summaries, nil
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, input repository.CreateProductInput) (*domain.Product, error) {
	product, err := u.products.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	u.InvalidateProduct(ctx, product.ID)
	return product, nil
}

func (u *CatalogUsecase) UpdateProduct(ctx context.Context, id int64, input repository.CreateProductInput) error {
	if err := u.products.Update(ctx, id, input); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	u.InvalidateProduct(ctx, id)
	return nil
}

func (u *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	u.InvalidateProduct(ctx, id)
	return nil
}

// InvalidateProduct drops the per-product cache entry. The "products" and
// search keys are left to age out within their hour-long TTL; a single
// product write does not cascade into them.
func (u *CatalogUsecase) InvalidateProduct(ctx context.Context, id int64) {
	if err := u.store.Del(ctx, cache.ProductKey(id)); err != nil {
		u.logger.WarnContext(ctx, "invalidate product cache", "product_id", id, "error", err)
	}
}

// cacheGet loads and decodes key into v, reporting whether it hit. A cache
// outage is treated as a miss: the database can still serve the request.
func (u *CatalogUsecase) cacheGet(ctx context.Context, key string, v any) bool {
	raw, err := u.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			u.logger.WarnContext(ctx, "cache read failed, falling back to db", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		u.logger.WarnContext(ctx, "corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (u *CatalogUsecase) cacheSet(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		u.logger.WarnContext(ctx, "encode cache entry", "key", key, "error", err)
		return
	}
	if err := u.store.SetEx(ctx, key, string(raw), derivedTTL); err != nil {
		u.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}
