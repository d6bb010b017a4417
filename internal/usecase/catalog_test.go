package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
	"github.com/tearoma/tearoma-api/internal/usecase"
)

var chai = domain.Product{
	ID:       42,
	Name:     "Masala Chai",
	Price:    12.50,
	Category: "Tea",
	ImageURL: "/images/masala-chai.jpg",
}

func TestGetProduct_MissPopulatesCache_SecondCallSkipsDB(t *testing.T) {
	var dbCalls int
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, id int64) (*domain.Product, error) {
			dbCalls++
			if id != chai.ID {
				return nil, domain.ErrProductNotFound
			}
			p := chai
			return &p, nil
		},
	}
	store := newMemStore()
	catalog := usecase.NewCatalogUsecase(repo, store, testLogger())

	first, err := catalog.GetProduct(context.Background(), chai.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := catalog.GetProduct(context.Background(), chai.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dbCalls != 1 {
		t.Errorf("db calls = %d, want 1 (second read must be served from cache)", dbCalls)
	}
	if *first != *second {
		t.Errorf("cached projection %+v differs from original %+v", *second, *first)
	}
	if second.ProductID != chai.ID || second.Name != chai.Name || second.Price != chai.Price {
		t.Errorf("projection fields wrong: %+v", *second)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ int64) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	catalog := usecase.NewCatalogUsecase(repo, newMemStore(), testLogger())

	if _, err := catalog.GetProduct(context.Background(), 99); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("want ErrProductNotFound, got %v", err)
	}
}

func TestInvalidateProduct_NextReadReflectsLatestState(t *testing.T) {
	current := chai
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ int64) (*domain.Product, error) {
			p := current
			return &p, nil
		},
	}
	store := newMemStore()
	catalog := usecase.NewCatalogUsecase(repo, store, testLogger())

	if _, err := catalog.GetProduct(context.Background(), chai.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current.Price = 15.00

	// Invalidation is idempotent: any number of calls leaves the same state.
	catalog.InvalidateProduct(context.Background(), chai.ID)
	catalog.InvalidateProduct(context.Background(), chai.ID)

	got, err := catalog.GetProduct(context.Background(), chai.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Price != 15.00 {
		t.Errorf("price = %v, want 15.00 (stale cached copy served after invalidation)", got.Price)
	}
}

func TestInvalidateProduct_LeavesListAndSearchEntries(t *testing.T) {
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ int64) (*domain.Product, error) {
			p := chai
			return &p, nil
		},
		list: func(_ context.Context) ([]domain.Product, error) {
			return []domain.Product{chai}, nil
		},
		search: func(_ context.Context, _ string) ([]domain.Product, error) {
			return []domain.Product{chai}, nil
		},
	}
	store := newMemStore()
	catalog := usecase.NewCatalogUsecase(repo, store, testLogger())

	ctx := context.Background()
	if _, err := catalog.GetProduct(ctx, chai.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.ListProducts(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.Search(ctx, "chai"); err != nil {
		t.Fatal(err)
	}

	catalog.InvalidateProduct(ctx, chai.ID)

	if store.has(cache.ProductKey(chai.ID)) {
		t.Error("per-product entry survived invalidation")
	}
	if !store.has(cache.ProductsKey()) {
		t.Error("list entry was cascade-invalidated; it should age out via TTL instead")
	}
	if !store.has(cache.SearchKey("chai")) {
		t.Error("search entry was cascade-invalidated; it should age out via TTL instead")
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	catalog := usecase.NewCatalogUsecase(&fakeProductRepo{}, newMemStore(), testLogger())

	for _, q := range []string{"", "   "} {
		if _, err := catalog.Search(context.Background(), q); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("Search(%q): want ErrEmptyQuery, got %v", q, err)
		}
	}
}

func TestSearch_ResultsIncludeDescription(t *testing.T) {
	full := chai
	full.Description = "Spiced black tea blend"
	repo := &fakeProductRepo{
		search: func(_ context.Context, _ string) ([]domain.Product, error) {
			return []domain.Product{full}, nil
		},
	}
	catalog := usecase.NewCatalogUsecase(repo, newMemStore(), testLogger())

	results, err := catalog.Search(context.Background(), "spiced")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Description != full.Description {
		t.Errorf("search results = %+v, want description included", results)
	}
}

func TestGetProduct_CacheOutageFallsBackToDB(t *testing.T) {
	var dbCalls int
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ int64) (*domain.Product, error) {
			dbCalls++
			p := chai
			return &p, nil
		},
	}
	store := &failingStore{err: errors.New("connection refused")}
	catalog := usecase.NewCatalogUsecase(repo, store, testLogger())

	got, err := catalog.GetProduct(context.Background(), chai.ID)
	if err != nil {
		t.Fatalf("cache outage must not fail a request the db can serve: %v", err)
	}
	if got.ProductID != chai.ID {
		t.Errorf("got %+v", got)
	}
	if dbCalls != 1 {
		t.Errorf("db calls = %d, want 1", dbCalls)
	}
}

func TestUpdateProduct_InvalidatesEntry(t *testing.T) {
	updated := false
	repo := &fakeProductRepo{
		findByID: func(_ context.Context, _ int64) (*domain.Product, error) {
			p := chai
			if updated {
				p.Price = 99.0
			}
			return &p, nil
		},
		update: func(_ context.Context, _ int64, _ repository.CreateProductInput) error {
			updated = true
			return nil
		},
	}
	store := newMemStore()
	catalog := usecase.NewCatalogUsecase(repo, store, testLogger())

	ctx := context.Background()
	if _, err := catalog.GetProduct(ctx, chai.ID); err != nil {
		t.Fatal(err)
	}

	if err := catalog.UpdateProduct(ctx, chai.ID, repository.CreateProductInput{Name: chai.Name, Price: 99.0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := catalog.GetProduct(ctx, chai.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 99.0 {
		t.Errorf("price = %v, want 99.0 after update", got.Price)
	}
}
