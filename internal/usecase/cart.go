package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type CartUsecase struct {
	carts repository.CartRepository
}

func NewCartUsecase(carts repository.CartRepository) *CartUsecase {
	return &CartUsecase{carts: carts}
}

// AddItem puts quantity of productID into the user's cart, creating the
// cart on first use and bumping the quantity if the product is already in
// it.
func (u *CartUsecase) AddItem(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}

	cart, err := u.carts.FindOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("find or create cart: %w", err)
	}

	item, err := u.carts.FindItem(ctx, cart.ID, productID)
	switch {
	case err == nil:
		if err := u.carts.IncrementItem(ctx, item.ID, quantity); err != nil {
			return fmt.Errorf("increment cart item: %w", err)
		}
	case errors.Is(err, domain.ErrCartItemNotFound):
		if err := u.carts.AddItem(ctx, cart.ID, productID, quantity); err != nil {
			return fmt.Errorf("add cart item: %w", err)
		}
	default:
		return fmt.Errorf("find cart item: %w", err)
	}
	return nil
}

// View returns the cart id and its priced-out lines. A user without a cart
// gets a zero cart id and no lines, not an error.
func (u *CartUsecase) View(ctx context.Context, userID int64) (int64, []domain.CartLine, error) {
	cart, err := u.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return 0, nil, nil
		}
		return 0, nil, fmt.Errorf("find cart: %w", err)
	}

	lines, err := u.carts.Lines(ctx, cart.ID)
	if err != nil {
		return 0, nil, fmt.Errorf("load cart lines: %w", err)
	}
	return cart.ID, lines, nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, itemID int64) error {
	if err := u.carts.RemoveItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}
