package usecase

import (
	"context"
	"fmt"

	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

type ChatUsecase struct {
	users    repository.UserRepository
	messages repository.ChatRepository
}

func NewChatUsecase(users repository.UserRepository, messages repository.ChatRepository) *ChatUsecase {
	return &ChatUsecase{users: users, messages: messages}
}

func (u *ChatUsecase) Send(ctx context.Context, email, message string) (*domain.ChatMessage, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	m, err := u.messages.Create(ctx, user.ID, message)
	if err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}
	return m, nil
}

func (u *ChatUsecase) List(ctx context.Context, email string) ([]domain.ChatMessage, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	messages, err := u.messages.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return messages, nil
}
