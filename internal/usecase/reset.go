package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/email"
	"github.com/tearoma/tearoma-api/internal/metrics"
	"github.com/tearoma/tearoma-api/internal/repository"
	"github.com/tearoma/tearoma-api/internal/token"
)

const resetTokenTTL = cache.TTLResetToken * time.Second

const flagValid = "valid"

// ResetUsecase mints time-boxed password reset tokens and consumes each one
// at most once. A token is usable only while its signature verifies, its
// embedded issuance time is within 24 hours, and its validity flag is still
// present in the cache. Consumption removes the flag atomically before the
// credential write, so concurrent consume calls cannot both succeed.
type ResetUsecase struct {
	users    repository.UserRepository
	store    cache.Store
	signer   *token.Signer
	sender   email.Sender
	linkBase string
	logger   *slog.Logger
}

func NewResetUsecase(
	users repository.UserRepository,
	store cache.Store,
	signer *token.Signer,
	sender email.Sender,
	linkBase string,
	logger *slog.Logger,
) *ResetUsecase {
	return &ResetUsecase{
		users:    users,
		store:    store,
		signer:   signer,
		sender:   sender,
		linkBase: linkBase,
		logger:   logger.With("component", "reset"),
	}
}

// Issue mints a signed token for email's account, flags it valid for 24
// hours, and mails the reset link. If the mail fails the token is already
// issued and stays valid: the caller gets ErrDeliveryFailed along with the
// link, and nothing is rolled back.
func (u *ResetUsecase) Issue(ctx context.Context, emailAddr string) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	signed, err := u.signer.Sign(user.Email)
	if err != nil {
		return "", fmt.Errorf("mint reset token: %w", err)
	}

	if err := u.store.SetEx(ctx, cache.ResetTokenKey(signed), flagValid, resetTokenTTL); err != nil {
		return "", fmt.Errorf("store validity flag: %w", err)
	}
	metrics.ResetTokensIssued.Inc()

	link := u.linkBase + "/reset-password/" + signed
	body := fmt.Sprintf(`Hi %s,

Did you mean to reset the password linked to this account? If you did, please proceed to change your password by clicking the link below:
%s

Please note that this temporary link expires after 24 hours.

If you had no intention of changing your password, simply ignore this email. Rest assured your account is safe.

Regards,
The Tearoma team`, user.Name, link)

	if err := u.sender.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		u.logger.ErrorContext(ctx, "send reset email", "error", err)
		return link, domain.ErrDeliveryFailed
	}
	return link, nil
}

// Consume validates token and, exactly once per token, updates the account
// password. The validity flag is removed via an atomic delete-and-return
// before the database write, closing the replay window as early as
// possible: a second concurrent Consume for the same token observes the
// flag already gone and fails.
func (u *ResetUsecase) Consume(ctx context.Context, rawToken, newPassword string) error {
	emailAddr, err := u.signer.Verify(rawToken, resetTokenTTL)
	if err != nil {
		metrics.ResetTokensConsumed.WithLabelValues("invalid").Inc()
		return domain.ErrTokenInvalid
	}

	prior, err := u.store.GetDel(ctx, cache.ResetTokenKey(rawToken))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			// Expired naturally or already consumed — indistinguishable on
			// purpose.
			metrics.ResetTokensConsumed.WithLabelValues("invalid").Inc()
			return domain.ErrTokenInvalid
		}
		return fmt.Errorf("claim validity flag: %w", err)
	}
	if prior != flagValid {
		metrics.ResetTokensConsumed.WithLabelValues("invalid").Inc()
		return domain.ErrTokenInvalid
	}

	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		// The token outlived its account.
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := u.users.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	metrics.ResetTokensConsumed.WithLabelValues("success").Inc()
	return nil
}
