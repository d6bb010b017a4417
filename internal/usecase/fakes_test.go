package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tearoma/tearoma-api/internal/cache"
	"github.com/tearoma/tearoma-api/internal/domain"
	"github.com/tearoma/tearoma-api/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---- in-memory cache store ----

// memStore is an in-memory cache.Store. All operations are atomic under one
// mutex, mirroring Redis's single-key atomicity.
type memStore struct {
	mu   sync.Mutex
	data map[string]string
	sets map[string]map[string]struct{}
	ttls map[string]time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		data: make(map[string]string),
		sets: make(map[string]map[string]struct{}),
		ttls: make(map[string]time.Duration),
	}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	return val, nil
}

func (s *memStore) SetEx(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	delete(s.ttls, key)
	return nil
}

func (s *memStore) GetDel(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", cache.ErrCacheMiss
	}
	delete(s.data, key)
	delete(s.ttls, key)
	return val, nil
}

func (s *memStore) SAdd(_ context.Context, key string, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]struct{})
	}
	s.sets[key][member] = struct{}{}
	return nil
}

func (s *memStore) SMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// failingStore errors on every read/write, simulating a cache outage.
type failingStore struct {
	err error
}

func (s *failingStore) Get(context.Context, string) (string, error)            { return "", s.err }
func (s *failingStore) SetEx(context.Context, string, string, time.Duration) error { return s.err }
func (s *failingStore) Del(context.Context, string) error                      { return s.err }
func (s *failingStore) GetDel(context.Context, string) (string, error)         { return "", s.err }
func (s *failingStore) SAdd(context.Context, string, string) error             { return s.err }
func (s *failingStore) SMembers(context.Context, string) ([]string, error)     { return nil, s.err }

// ---- repo fakes ----

type fakeUserRepo struct {
	create             func(ctx context.Context, input repository.CreateUserInput) (*domain.User, error)
	findByEmail        func(ctx context.Context, email string) (*domain.User, error)
	updateProfile      func(ctx context.Context, email string, input repository.UpdateProfileInput) error
	updatePasswordHash func(ctx context.Context, userID int64, hash string) error
}

func (r *fakeUserRepo) Create(ctx context.Context, input repository.CreateUserInput) (*domain.User, error) {
	return r.create(ctx, input)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, email string, input repository.UpdateProfileInput) error {
	return r.updateProfile(ctx, email, input)
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	return r.updatePasswordHash(ctx, userID, hash)
}

type fakeProductRepo struct {
	create        func(ctx context.Context, input repository.CreateProductInput) (*domain.Product, error)
	findByID      func(ctx context.Context, id int64) (*domain.Product, error)
	findByIDs     func(ctx context.Context, ids []int64) ([]domain.Product, error)
	list          func(ctx context.Context) ([]domain.Product, error)
	listByCat     func(ctx context.Context, category string) ([]domain.Product, error)
	search        func(ctx context.Context, query string) ([]domain.Product, error)
	findRecommend func(ctx context.Context, categories []string, excludeIDs []int64, limit int) ([]domain.Product, error)
	update        func(ctx context.Context, id int64, input repository.CreateProductInput) error
	delete        func(ctx context.Context, id int64) error
}

func (r *fakeProductRepo) Create(ctx context.Context, input repository.CreateProductInput) (*domain.Product, error) {
	return r.create(ctx, input)
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.findByID(ctx, id)
}

func (r *fakeProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	return r.findByIDs(ctx, ids)
}

func (r *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx)
}

func (r *fakeProductRepo) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.listByCat(ctx, category)
}

func (r *fakeProductRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return r.search(ctx, query)
}

func (r *fakeProductRepo) FindByCategoriesExcluding(ctx context.Context, categories []string, excludeIDs []int64, limit int) ([]domain.Product, error) {
	return r.findRecommend(ctx, categories, excludeIDs, limit)
}

func (r *fakeProductRepo) Update(ctx context.Context, id int64, input repository.CreateProductInput) error {
	return r.update(ctx, id, input)
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, to, subject, body)
}
