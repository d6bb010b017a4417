package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

const topBestSellers = 4

type BestSellerUsecase struct {
	bestSellers repository.BestSellerRepository
	products    repository.ProductRepository
	store       cache.Store
	logger      *slog.Logger
}

func NewBestSellerUsecase(
	bestSellers repository.BestSellerRepository,
	products repository.ProductRepository,
	store cache.Store,
	logger *slog.Logger,
) *BestSellerUsecase {
	return &BestSellerUsecase{
		bestSellers: bestSellers,
		products:    products,
		store:       store,
		logger:      logger.With("component", "bestseller"),
	}
}

// List is a read-through on the fixed best_sellers key.
func (u *BestSellerUsecase) List(ctx context.Context) ([]domain.BestSellerEntry, error) {
	key := cache.BestSellersKey()

	if raw, err := u.store.Get(ctx, key); err == nil {
		var cached []domain.BestSellerEntry
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
		u.logger.WarnContext(ctx, "corrupt best sellers entry", "key", key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		u.logger.WarnContext(ctx, "cache read failed, falling back to db", "key", key, "error", err)
	}

	entries, err := u.bestSellers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list best sellers: %w", err)
	}

	if raw, err := json.Marshal(entries); err == nil {
		if err := u.store.SetEx(ctx, key, string(raw), derivedTTL); err != nil {
			u.logger.WarnContext(ctx, "cache best sellers", "key", key, "error", err)
		}
	}
	return entries, nil
}

// Refresh reloads the listing from Postgres and rewrites the best_sellers
// entry unconditionally, restarting its TTL.
func (u *BestSellerUsecase) Refresh(ctx context.Context) error {
	entries, err := u.bestSellers.List(ctx)
	if err != nil {
		return fmt.Errorf("list best sellers: %w", err)
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode best sellers: %w", err)
	}
	if err := u.store.SetEx(ctx, cache.BestSellersKey(), string(raw), derivedTTL); err != nil {
		return fmt.Errorf("cache best sellers: %w", err)
	}
	return nil
}

func (u *BestSellerUsecase) Top(ctx context.Context) ([]domain.BestSellerEntry, error) {
	entries, err := u.bestSellers.Top(ctx, topBestSellers)
	if err != nil {
		return nil, fmt.Errorf("top best sellers: %w", err)
	}
	return entries, nil
}

func (u *BestSellerUsecase) Add(ctx context.Context, productID int64, quantitySold int) error {
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		return fmt.Errorf("find product: %w", err)
	}

	if err := u.bestSellers.Add(ctx, productID, quantitySold); err != nil {
		return fmt.Errorf("add best seller: %w", err)
	}

	// The listing is cached; drop it so the new entry shows up.
	if err := u.store.Del(ctx, cache.BestSellersKey()); err != nil {
		u.logger.WarnContext(ctx, "invalidate best sellers cache", "error", err)
	}
	return nil
}
