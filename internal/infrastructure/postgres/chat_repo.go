package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) Create(ctx context.Context, userID int64, message string) (*domain.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (user_id, message) VALUES ($1, $2)
		RETURNING chat_message_id, user_id, message, created_at`

	var m domain.ChatMessage
	err := r.pool.QueryRow(ctx, query, userID, message).
		Scan(&m.ID, &m.UserID, &m.Message, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}
	return &m, nil
}

func (r *ChatRepository) ListByUser(ctx context.Context, userID int64) ([]domain.ChatMessage, error) {
	query := `SELECT chat_message_id, user_id, message, created_at
		FROM chat_messages WHERE user_id = $1 ORDER BY chat_message_id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}
