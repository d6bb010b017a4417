package usecase

import (
	"context"
	"fmt"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type SubscriptionUsecase struct {
	users         repository.UserRepository
	products      repository.ProductRepository
	subscriptions repository.SubscriptionRepository
}

func NewSubscriptionUsecase(
	users repository.UserRepository,
	products repository.ProductRepository,
	subscriptions repository.SubscriptionRepository,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		users:         users,
		products:      products,
		subscriptions: subscriptions,
	}
}

func (u *SubscriptionUsecase) Subscribe(ctx context.Context, email string, productID int64) (*domain.Subscription, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	sub, err := u.subscriptions.Create(ctx, user.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return sub, nil
}

func (u *SubscriptionUsecase) List(ctx context.Context, email string) ([]domain.Subscription, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	subs, err := u.subscriptions.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (u *SubscriptionUsecase) Unsubscribe(ctx context.Context, email string, productID int64) error {
	sub, err := u.find(ctx, email, productID)
	if err != nil {
		return err
	}
	if err := u.subscriptions.UpdateStatus(ctx, sub.ID, domain.SubscriptionCancelled); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}
	return nil
}

func (u *SubscriptionUsecase) UpdatePlan(ctx context.Context, email string, productID int64, frequency string, quantity int) error {
	sub, err := u.find(ctx, email, productID)
	if err != nil {
		return err
	}
	if err := u.subscriptions.UpdatePlan(ctx, sub.ID, frequency, quantity); err != nil {
		return fmt.Errorf("update subscription plan: %w", err)
	}
	return nil
}

func (u *SubscriptionUsecase) Status(ctx context.Context, email string, productID int64) (domain.SubscriptionStatus, error) {
	sub, err := u.find(ctx, email, productID)
	if err != nil {
		return "", err
	}
	return sub.Status, nil
}

func (u *SubscriptionUsecase) find(ctx context.Context, email string, productID int64) (*domain.Subscription, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	sub, err := u.subscriptions.FindByUserAndProduct(ctx, user.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}
