package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type BestSellerRepository struct {
	pool *pgxpool.Pool
}

func NewBestSellerRepository(pool *pgxpool.Pool) *BestSellerRepository {
	return &BestSellerRepository{pool: pool}
}

func (r *BestSellerRepository) Add(ctx context.Context, productID int64, quantitySold int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO best_sellers (product_id, quantity_sold) VALUES ($1, $2)
		 ON CONFLICT (product_id) DO UPDATE SET quantity_sold = EXCLUDED.quantity_sold`,
		productID, quantitySold,
	)
	if err != nil {
		return fmt.Errorf("upsert best seller: %w", err)
	}
	return nil
}

func (r *BestSellerRepository) List(ctx context.Context) ([]domain.BestSellerEntry, error) {
	query := `
		SELECT bs.product_id, p.name, p.price, COALESCE(p.category, ''),
		       COALESCE(p.image_url, ''), bs.quantity_sold
		FROM best_sellers bs
		JOIN products p ON p.product_id = bs.product_id
		ORDER BY bs.product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query best sellers: %w", err)
	}
	defer rows.Close()

	return collectBestSellers(rows)
}

func (r *BestSellerRepository) Top(ctx context.Context, limit int) ([]domain.BestSellerEntry, error) {
	query := `
		SELECT bs.product_id, p.name, p.price, COALESCE(p.category, ''),
		       COALESCE(p.image_url, ''), bs.quantity_sold
		FROM best_sellers bs
		JOIN products p ON p.product_id = bs.product_id
		ORDER BY bs.quantity_sold DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top best sellers: %w", err)
	}
	defer rows.Close()

	return collectBestSellers(rows)
}

func collectBestSellers(rows pgx.Rows) ([]domain.BestSellerEntry, error) {
	var entries []domain.BestSellerEntry
	for rows.Next() {
		var e domain.BestSellerEntry
		if err := rows.Scan(&e.ProductID, &e.Name, &e.Price, &e.Category,
			&e.ImageURL, &e.QuantitySold); err != nil {
			return nil, fmt.Errorf("scan best seller: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate best sellers: %w", err)
	}
	return entries, nil
}
