package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, userID, productID int64) (*domain.Subscription, error)
	FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	UpdatePlan(ctx context.Context, id int64, frequency string, quantity int) error
	UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error
}
