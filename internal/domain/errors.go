package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartItemNotFound     = errors.New("cart item not found")

	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmptyQuery is returned when a required search query is missing.
	ErrEmptyQuery = errors.New("no query provided")

	// ErrNoViewHistory means the user exists but has never viewed a product,
	// so there is nothing to base recommendations on. Deliberately distinct
	// from ErrUserNotFound.
	ErrNoViewHistory = errors.New("no viewed products found")

	// ErrTokenInvalid covers every way a reset token can be unusable:
	// bad signature, older than 24 hours, already consumed, or naturally
	// expired. Callers cannot tell these apart.
	ErrTokenInvalid = errors.New("reset link is invalid or expired")

	// ErrDeliveryFailed means the reset email could not be sent. The token
	// itself was issued and stays valid.
	ErrDeliveryFailed = errors.New("failed to send email")
)
