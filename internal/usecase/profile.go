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

// ProfileUsecase serves user profiles read-through and invalidates the
// cached copy on update.
type ProfileUsecase struct {
	users  repository.UserRepository
	store  cache.Store
	logger *slog.Logger
}

func NewProfileUsecase(users repository.UserRepository, store cache.Store, logger *slog.Logger) *ProfileUsecase {
	return &ProfileUsecase{
		users:  users,
		store:  store,
		logger: logger.With("component", "profile"),
	}
}

func (u *ProfileUsecase) Get(ctx context.Context, email string) (*domain.Profile, error) {
	key := cache.ProfileKey(email)

	if raw, err := u.store.Get(ctx, key); err == nil {
		var cached domain.Profile
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
		u.logger.WarnContext(ctx, "corrupt profile entry", "key", key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		u.logger.WarnContext(ctx, "cache read failed, falling back to db", "key", key, "error", err)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := user.Profile()
	if raw, err := json.Marshal(profile); err == nil {
		if err := u.store.SetEx(ctx, key, string(raw), derivedTTL); err != nil {
			u.logger.WarnContext(ctx, "cache profile", "key", key, "error", err)
		}
	}
	return &profile, nil
}

// Update writes the profile and drops its cache entry so the next read
// reflects the new state immediately.
func (u *ProfileUsecase) Update(ctx context.Context, email string, input repository.UpdateProfileInput) error {
	if err := u.users.UpdateProfile(ctx, email, input); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if err := u.store.Del(ctx, cache.ProfileKey(email)); err != nil {
		u.logger.WarnContext(ctx, "invalidate profile cache", "email", email, "error", err)
	}
	return nil
}
