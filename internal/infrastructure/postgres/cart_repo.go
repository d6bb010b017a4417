package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) FindOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	query := `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING cart_id, user_id, created_at`

	return scanCart(r.pool.QueryRow(ctx, query, userID))
}

func (r *CartRepository) FindByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	query := `SELECT cart_id, user_id, created_at FROM carts WHERE user_id = $1`

	return scanCart(r.pool.QueryRow(ctx, query, userID))
}

func (r *CartRepository) FindItem(ctx context.Context, cartID, productID int64) (*domain.CartItem, error) {
	query := `SELECT cart_item_id, cart_id, product_id, quantity
		FROM cart_items WHERE cart_id = $1 AND product_id = $2`

	var item domain.CartItem
	err := r.pool.QueryRow(ctx, query, cartID, productID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("scan cart item: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) AddItem(ctx context.Context, cartID, productID int64, quantity int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)`,
		cartID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) IncrementItem(ctx context.Context, itemID int64, by int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = quantity + $2 WHERE cart_item_id = $1`,
		itemID, by,
	)
	if err != nil {
		return fmt.Errorf("increment cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Lines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	query := `
		SELECT ci.cart_item_id, ci.product_id, p.name, ci.quantity, p.price,
		       ci.quantity * p.price
		FROM cart_items ci
		JOIN products p ON p.product_id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.CartItemID, &l.ProductID, &l.ProductName,
			&l.Quantity, &l.Price, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", err)
	}
	return lines, nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, itemID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func scanCart(row pgx.Row) (*domain.Cart, error) {
	var c domain.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("scan cart: %w", err)
	}
	return &c, nil
}
