package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type ChatRepository interface {
	Create(ctx context.Context, userID int64, message string) (*domain.ChatMessage, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error)
}
