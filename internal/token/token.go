// Package token signs and verifies self-describing password-reset tokens.
// A token embeds the account email and its issuance time; verification
// enforces the signature and a maximum age, so a token needs no server-side
// record beyond its validity flag in the cache.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrVerification = errors.New("token verification failed")

type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(key []byte) *Signer {
	return &Signer{key: key, now: time.Now}
}

// NewSignerAt is like NewSigner with an injectable clock, for tests.
func NewSignerAt(key []byte, now func() time.Time) *Signer {
	return &Signer{key: key, now: now}
}

// Sign produces an HS256 token embedding {email, issuance time}.
func (s *Signer) Sign(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"iat": s.now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and that the embedded issuance time is no
// older than maxAge, returning the embedded email. Any failure maps to
// ErrVerification; callers are not told which check failed.
func (s *Signer) Verify(raw string, maxAge time.Duration) (string, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrVerification
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrVerification
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrVerification
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return "", ErrVerification
	}
	if s.now().Sub(issuedAt.Time) > maxAge {
		return "", ErrVerification
	}

	return email, nil
}
