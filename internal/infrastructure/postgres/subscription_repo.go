package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

const subscriptionColumns = `subscription_id, user_id, product_id,
	COALESCE(frequency, ''), COALESCE(quantity, 0), status, created_at, updated_at`

func (r *SubscriptionRepository) Create(ctx context.Context, userID, productID int64) (*domain.Subscription, error) {
	query := `
		INSERT INTO subscriptions (user_id, product_id, status)
		VALUES ($1, $2, 'active')
		RETURNING ` + subscriptionColumns

	return scanSubscription(r.pool.QueryRow(ctx, query, userID, productID))
}

func (r *SubscriptionRepository) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1 AND product_id = $2
		ORDER BY created_at DESC
		LIMIT 1`

	return scanSubscription(r.pool.QueryRow(ctx, query, userID, productID))
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + `
		FROM subscriptions WHERE user_id = $1 ORDER BY subscription_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}
	return subs, nil
}

func (r *SubscriptionRepository) UpdatePlan(ctx context.Context, id int64, frequency string, quantity int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET frequency = $2, quantity = $3, updated_at = now()
		 WHERE subscription_id = $1`,
		id, frequency, quantity,
	)
	if err != nil {
		return fmt.Errorf("update subscription plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id int64, status domain.SubscriptionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subscriptions SET status = $2, updated_at = now() WHERE subscription_id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.ProductID,
		&s.Frequency, &s.Quantity, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return &s, nil
}
