package usecase_test

import (
	"context"
	"testing"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
	"github.com/tearoma/tearoma-api/internal/usecase"
)

func TestProfileGet_ReadThrough(t *testing.T) {
	var dbCalls int
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			dbCalls++
			u := testUser
			u.PhoneNumber = "555-0101"
			return &u, nil
		},
	}
	store := newMemStore()
	profiles := usecase.NewProfileUsecase(users, store, testLogger())

	ctx := context.Background()
	first, err := profiles.Get(ctx, testEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := profiles.Get(ctx, testEmail)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dbCalls != 1 {
		t.Errorf("db calls = %d, want 1", dbCalls)
	}
	if *first != *second {
		t.Errorf("cached profile %+v differs from original %+v", *second, *first)
	}
	if second.PhoneNumber != "555-0101" {
		t.Errorf("profile = %+v", *second)
	}
}

func TestProfileUpdate_InvalidatesCacheEntry(t *testing.T) {
	current := testUser
	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			u := current
			return &u, nil
		},
		updateProfile: func(_ context.Context, _ string, input repository.UpdateProfileInput) error {
			current.ShippingAddress = input.ShippingAddress
			return nil
		},
	}
	store := newMemStore()
	profiles := usecase.NewProfileUsecase(users, store, testLogger())

	ctx := context.Background()
	if _, err := profiles.Get(ctx, testEmail); err != nil {
		t.Fatal(err)
	}

	input := repository.UpdateProfileInput{Name: testUser.Name, ShippingAddress: "12 Jasmine Lane"}
	if err := profiles.Update(ctx, testEmail, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.has(cache.ProfileKey(testEmail)) {
		t.Error("profile entry survived update")
	}

	got, err := profiles.Get(ctx, testEmail)
	if err != nil {
		t.Fatal(err)
	}
	if got.ShippingAddress != "12 Jasmine Lane" {
		t.Errorf("shipping address = %q, want updated value", got.ShippingAddress)
	}
}

func TestLogin_WrongPasswordAndMissingAccountLookAlike(t *testing.T) {
	registered := &fakeUserRepo{
		create: func(_ context.Context, input repository.CreateUserInput) (*domain.User, error) {
			u := testUser
			u.PasswordHash = input.PasswordHash
			return &u, nil
		},
	}
	auth := usecase.NewAuthUsecase(registered)

	created, err := auth.Register(context.Background(), usecase.RegisterInput{
		Name: "Iris", Email: testEmail, Password: "correct-horse",
	})
	if err != nil {
		t.Fatal(err)
	}

	users := &fakeUserRepo{
		findByEmail: func(_ context.Context, addr string) (*domain.User, error) {
			if addr != testEmail {
				return nil, domain.ErrUserNotFound
			}
			u := *created
			return &u, nil
		},
	}
	auth = usecase.NewAuthUsecase(users)

	if _, err := auth.Login(context.Background(), testEmail, "correct-horse"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}

	_, wrongPass := auth.Login(context.Background(), testEmail, "wrong")
	_, noAccount := auth.Login(context.Background(), "ghost@example.com", "whatever")
	if wrongPass != domain.ErrInvalidCredentials {
		t.Errorf("wrong password: want ErrInvalidCredentials, got %v", wrongPass)
	}
	if noAccount != domain.ErrInvalidCredentials {
		t.Errorf("missing account: want ErrInvalidCredentials, got %v", noAccount)
	}
}
