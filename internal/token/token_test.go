package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/tearoma/tearoma-api/internal/token"
)

var key = []byte("0123456789abcdef0123456789abcdef")

func TestSignVerify_Roundtrip(t *testing.T) {
	s := token.NewSigner(key)

	raw, err := s.Sign("iris@example.com")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	email, err := s.Verify(raw, 24*time.Hour)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email != "iris@example.com" {
		t.Errorf("email = %q", email)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	raw, err := token.NewSigner(key).Sign("iris@example.com")
	if err != nil {
		t.Fatal(err)
	}

	other := token.NewSigner([]byte("ffffffffffffffffffffffffffffffff"))
	if _, err := other.Verify(raw, 24*time.Hour); !errors.Is(err, token.ErrVerification) {
		t.Errorf("want ErrVerification, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	s := token.NewSigner(key)
	raw, err := s.Sign("iris@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Verify(raw+"x", 24*time.Hour); !errors.Is(err, token.ErrVerification) {
		t.Errorf("want ErrVerification, got %v", err)
	}
	if _, err := s.Verify("not-a-token", 24*time.Hour); !errors.Is(err, token.ErrVerification) {
		t.Errorf("want ErrVerification, got %v", err)
	}
}

func TestVerify_AgeBoundary(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	minter := token.NewSignerAt(key, func() time.Time { return issued })
	raw, err := minter.Sign("iris@example.com")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{"well within window", issued.Add(time.Hour), false},
		{"at the boundary", issued.Add(24 * time.Hour), false},
		{"just past the boundary", issued.Add(24*time.Hour + time.Second), true},
		{"long expired", issued.Add(48 * time.Hour), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := token.NewSignerAt(key, func() time.Time { return tc.now })
			_, err := verifier.Verify(raw, 24*time.Hour)
			if tc.wantErr && !errors.Is(err, token.ErrVerification) {
				t.Errorf("want ErrVerification, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
