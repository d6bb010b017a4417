package repository

import (
	"context"

	"github.com/tearoma/tearoma-api/internal/domain"
)

type CreateUserInput struct {
	Name            string
	Email           string
	PasswordHash    string
	PhoneNumber     string
	ShippingAddress string
}

type UpdateProfileInput struct {
	Name            string
	PhoneNumber     string
	ShippingAddress string
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, input UpdateProfileInput) error
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}
