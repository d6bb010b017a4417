package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type CartRepository interface {
	// FindOrCreate returns the user's cart, creating it on first use.
	FindOrCreate(ctx context.Context, userID int64) (*domain.Cart, error)
	FindByUser(ctx context.Context, userID int64) (*domain.Cart, error)
	FindItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int) error
	IncrementItem(ctx context.Context, itemID int64, by int) error
	Lines(ctx context.Context, cartID int64) ([]domain.CartLine, error)
	RemoveItem(ctx context.Context, itemID int64) error
}
