package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/token"
	"github.com/tearoma/tearoma-api/internal/usecase"
)

const (
	resetKey  = "0123456789abcdef0123456789abcdef"
	resetBase = "https://tearoma.example.com"
)

func knownUserRepo(onHashUpdate func(userID int64, hash string) error) *fakeUserRepo {
	return &fakeUserRepo{
		findByEmail: func(_ context.Context, addr string) (*domain.User, error) {
			if addr != testEmail {
				return nil, domain.ErrUserNotFound
			}
			u := testUser
			return &u, nil
		},
		updatePasswordHash: func(_ context.Context, userID int64, hash string) error {
			if onHashUpdate == nil {
				return nil
			}
			return onHashUpdate(userID, hash)
		},
	}
}

func resetFixture(store cache.Store, users *fakeUserRepo, sender *fakeEmailSender) *usecase.ResetUsecase {
	if sender == nil {
		sender = &fakeEmailSender{send: func(context.Context, string, string, string) error { return nil }}
	}
	signer := token.NewSigner([]byte(resetKey))
	return usecase.NewResetUsecase(users, store, signer, sender, resetBase, testLogger())
}

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	prefix := resetBase + "/reset-password/"
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("link %q does not start with %q", link, prefix)
	}
	return strings.TrimPrefix(link, prefix)
}

func TestIssue_FlagsTokenAndMailsLink(t *testing.T) {
	store := newMemStore()
	var sentTo, sentBody string
	sender := &fakeEmailSender{
		send: func(_ context.Context, to, _ string, body string) error {
			sentTo, sentBody = to, body
			return nil
		},
	}
	reset := resetFixture(store, knownUserRepo(nil), sender)

	link, err := reset.Issue(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := tokenFromLink(t, link)
	if !store.has(cache.ResetTokenKey(raw)) {
		t.Error("validity flag missing after issue")
	}
	if sentTo != testEmail {
		t.Errorf("mail sent to %q, want %q", sentTo, testEmail)
	}
	if !strings.Contains(sentBody, link) {
		t.Error("mail body does not contain the reset link")
	}
}

func TestIssue_UnknownUser(t *testing.T) {
	reset := resetFixture(newMemStore(), knownUserRepo(nil), nil)

	if _, err := reset.Issue(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("want ErrUserNotFound, got %v", err)
	}
}

func TestIssue_DeliveryFailureKeepsTokenValid(t *testing.T) {
	store := newMemStore()
	sender := &fakeEmailSender{
		send: func(context.Context, string, string, string) error {
			return errors.New("smtp unreachable")
		},
	}
	reset := resetFixture(store, knownUserRepo(nil), sender)

	link, err := reset.Issue(context.Background(), testEmail)
	if !errors.Is(err, domain.ErrDeliveryFailed) {
		t.Fatalf("want ErrDeliveryFailed, got %v", err)
	}
	if link == "" {
		t.Fatal("link must still be returned on delivery failure")
	}

	// The token was issued before the send; a failed mail rolls nothing back.
	raw := tokenFromLink(t, link)
	if !store.has(cache.ResetTokenKey(raw)) {
		t.Error("validity flag rolled back after delivery failure")
	}
	if err := reset.Consume(context.Background(), raw, "new-password"); err != nil {
		t.Errorf("token issued alongside a failed mail must remain consumable: %v", err)
	}
}

func TestConsume_UpdatesPasswordOnce(t *testing.T) {
	store := newMemStore()
	var gotUserID int64
	var gotHash string
	users := knownUserRepo(func(userID int64, hash string) error {
		gotUserID, gotHash = userID, hash
		return nil
	})
	reset := resetFixture(store, users, nil)

	link, err := reset.Issue(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}
	raw := tokenFromLink(t, link)

	if err := reset.Consume(context.Background(), raw, "brand-new-secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != testUser.ID {
		t.Errorf("password updated for user %d, want %d", gotUserID, testUser.ID)
	}
	if bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("brand-new-secret")) != nil {
		t.Error("stored hash does not verify against the new password")
	}
	if store.has(cache.ResetTokenKey(raw)) {
		t.Error("validity flag survived consumption")
	}

	// A second consume of the same token must fail.
	if err := reset.Consume(context.Background(), raw, "another-secret"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("second consume: want ErrTokenInvalid, got %v", err)
	}
}

func TestConsume_MissingFlagFailsBeforeUserLookup(t *testing.T) {
	store := newMemStore()
	updates := 0
	users := knownUserRepo(func(int64, string) error {
		updates++
		return nil
	})
	reset := resetFixture(store, users, nil)

	link, err := reset.Issue(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}
	raw := tokenFromLink(t, link)

	// Simulate natural expiry of the flag.
	if err := store.Del(context.Background(), cache.ResetTokenKey(raw)); err != nil {
		t.Fatal(err)
	}

	if err := reset.Consume(context.Background(), raw, "new-password"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
	if updates != 0 {
		t.Errorf("password was updated %d times for an unflagged token", updates)
	}
}

func TestConsume_TamperedToken(t *testing.T) {
	store := newMemStore()
	reset := resetFixture(store, knownUserRepo(nil), nil)

	link, err := reset.Issue(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}
	raw := tokenFromLink(t, link)
	tampered := raw + "x"

	if err := reset.Consume(context.Background(), tampered, "new-password"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
	if !store.has(cache.ResetTokenKey(raw)) {
		t.Error("original token's flag was consumed by a tampered token")
	}
}

func TestConsume_ExpiredTokenFailsEvenWithFlagPresent(t *testing.T) {
	store := newMemStore()
	updates := 0
	users := knownUserRepo(func(int64, string) error {
		updates++
		return nil
	})

	// Mint a token whose embedded issuance time is 25 hours old.
	stale := token.NewSignerAt([]byte(resetKey), func() time.Time {
		return time.Now().Add(-25 * time.Hour)
	})
	raw, err := stale.Sign(testEmail)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetEx(context.Background(), cache.ResetTokenKey(raw), "valid", time.Hour); err != nil {
		t.Fatal(err)
	}

	reset := resetFixture(store, users, nil)
	if err := reset.Consume(context.Background(), raw, "new-password"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
	if updates != 0 {
		t.Errorf("password was updated %d times for an expired token", updates)
	}
	// Signature checks run before the flag is claimed, so the flag survives.
	if !store.has(cache.ResetTokenKey(raw)) {
		t.Error("expired token consumed its validity flag")
	}
}

func TestConsume_ConcurrentAtMostOnce(t *testing.T) {
	store := newMemStore()
	var mu sync.Mutex
	updates := 0
	users := knownUserRepo(func(int64, string) error {
		mu.Lock()
		updates++
		mu.Unlock()
		return nil
	})
	reset := resetFixture(store, users, nil)

	link, err := reset.Issue(context.Background(), testEmail)
	if err != nil {
		t.Fatal(err)
	}
	raw := tokenFromLink(t, link)

	const racers = 16
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- reset.Consume(context.Background(), raw, "contended-password")
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if updates != 1 {
		t.Errorf("password updates = %d, want exactly 1", updates)
	}
}
