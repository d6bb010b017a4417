package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Subscription struct {
	ID        int64
	UserID    int64
	ProductID int64
	Frequency string
	Quantity  int
	Status    SubscriptionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
