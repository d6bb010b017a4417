package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type BestSellerRepository interface {
	Add(ctx context.Context, productID int64, quantitySold int) error
	List(ctx context.Context) ([]domain.BestSellerEntry, error)
	Top(ctx context.Context, limit int) ([]domain.BestSellerEntry, error)
}
