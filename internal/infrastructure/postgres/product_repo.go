package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `product_id, name, COALESCE(description, ''), price,
	COALESCE(category, ''), COALESCE(image_url, ''), stock_quantity,
	created_at, updated_at`

func (r *ProductRepository) Create(ctx context.Context, input repository.CreateProductInput) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, category, image_url, stock_quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + productColumns

	row := r.pool.QueryRow(ctx, query,
		input.Name, input.Description, input.Price, input.Category, input.ImageURL, input.StockQuantity,
	)
	return scanProduct(row)
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("query products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	sql := `SELECT ` + productColumns + `
		FROM products
		WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
		ORDER BY product_id`

	rows, err := r.pool.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) FindByCategoriesExcluding(ctx context.Context, categories []string, excludeIDs []int64, limit int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE category = ANY($1) AND NOT (product_id = ANY($2))
		ORDER BY product_id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, categories, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("query recommendable products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) Update(ctx context.Context, id int64, input repository.CreateProductInput) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, category = $5,
		     image_url = $6, stock_quantity = $7, updated_at = now()
		 WHERE product_id = $1`,
		id, input.Name, input.Description, input.Price, input.Category, input.ImageURL, input.StockQuantity,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.ImageURL, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
