package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/repository"
)

// ViewTracker records which products a user has looked at. The set lives in
// the cache with no expiry: browsing history is kept until explicitly
// cleared, unlike the derived caches around it.
type ViewTracker struct {
	users repository.UserRepository
	store cache.Store
}

func NewViewTracker(users repository.UserRepository, store cache.Store) *ViewTracker {
	return &ViewTracker{users: users, store: store}
}

// RecordView adds productID to the user's viewed set. Adding the same
// product twice is a no-op.
func (t *ViewTracker) RecordView(ctx context.Context, email string, productID int64) error {
	user, err := t.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	key := cache.ViewedProductsKey(user.ID)
	if err := t.store.SAdd(ctx, key, strconv.FormatInt(productID, 10)); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// Viewed returns the user's viewed product ids. An empty slice is a valid
// result meaning no views were ever recorded.
func (t *ViewTracker) Viewed(ctx context.Context, userID int64) ([]int64, error) {
	members, err := t.store.SMembers(ctx, cache.ViewedProductsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load viewed products: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse viewed product id %q: %w", m, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
