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

const maxRecommendations = 5

// RecommendUsecase derives a ranked product list from the user's viewed
// set: up to 5 products sharing a category with something they viewed,
// excluding everything they already viewed. The computation fans out into
// several queries, so the final answer is memoized for an hour.
type RecommendUsecase struct {
	users    repository.UserRepository
	products repository.ProductRepository
	views    *ViewTracker
	store    cache.Store
	logger   *slog.Logger
}

func NewRecommendUsecase(
	users repository.UserRepository,
	products repository.ProductRepository,
	views *ViewTracker,
	store cache.Store,
	logger *slog.Logger,
) *RecommendUsecase {
	return &RecommendUsecase{
		users:    users,
		products: products,
		views:    views,
		store:    store,
		logger:   logger.With("component", "recommend"),
	}
}

func (u *RecommendUsecase) Recommend(ctx context.Context, email string) ([]domain.ProductSummary, error) {
	key := cache.RecommendationsKey(email)

	// A cached list — even an empty one — short-circuits everything below,
	// including the user lookup.
	if raw, err := u.store.Get(ctx, key); err == nil {
		var cached []domain.ProductSummary
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			return cached, nil
		}
		u.logger.WarnContext(ctx, "corrupt recommendations entry", "key", key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		u.logger.WarnContext(ctx, "cache read failed, recomputing", "key", key, "error", err)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	viewedIDs, err := u.views.Viewed(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load view history: %w", err)
	}
	if len(viewedIDs) == 0 {
		return nil, domain.ErrNoViewHistory
	}

	viewed, err := u.products.FindByIDs(ctx, viewedIDs)
	if err != nil {
		return nil, fmt.Errorf("load viewed products: %w", err)
	}

	seen := make(map[string]struct{}, len(viewed))
	categories := make([]string, 0, len(viewed))
	for i := range viewed {
		if _, ok := seen[viewed[i].Category]; ok {
			continue
		}
		seen[viewed[i].Category] = struct{}{}
		categories = append(categories, viewed[i].Category)
	}

	recommended, err := u.products.FindByCategoriesExcluding(ctx, categories, viewedIDs, maxRecommendations)
	if err != nil {
		return nil, fmt.Errorf("find recommendable products: %w", err)
	}

	summaries := make([]domain.ProductSummary, 0, len(recommended))
	for i := range recommended {
		summaries = append(summaries, recommended[i].Summary())
	}

	if raw, err := json.Marshal(summaries); err == nil {
		if err := u.store.SetEx(ctx, key, string(raw), derivedTTL); err != nil {
			u.logger.WarnContext(ctx, "cache recommendations", "key", key, "error", err)
		}
	}

	return summaries, nil
}
