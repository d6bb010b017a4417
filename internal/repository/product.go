package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	ImageURL      string
	StockQuantity int
}

type ProductRepository interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// Search matches query case-insensitively as a substring of name,
	// description or category.
	Search(ctx context.Context, query string) ([]domain.Product, error)
	// FindByCategoriesExcluding returns up to limit products whose category
	// is in categories and whose id is not in excludeIDs.
	FindByCategoriesExcluding(ctx context.Context, categories []string, excludeIDs []int64, limit int) ([]domain.Product, error)
	Update(ctx context.Context, id int64, input CreateProductInput) error
	Delete(ctx context.Context, id int64) error
}
