// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memSessionRepo is a small in-memory implementation used by unit tests.
type memSessionRepo struct {
	mu     sync.RWMutex
	store  map[string]*model.SessionData
	getErr error // used by tests to simulate read failures
	putErr error
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{store: make(map[string]*model.SessionData)}
}

func (m *memSessionRepo) Get(ctx context.Context, username string) (*model.SessionData, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[username]
	if !ok {
		return &model.SessionData{}, nil
	}
	cp := *d
	cp.Favorites = append([]model.JobListing(nil), d.Favorites...)
	cp.SavedSearches = append([]model.SavedSearch(nil), d.SavedSearches...)
	return &cp, nil
}

func (m *memSessionRepo) Put(ctx context.Context, username string, data *model.SessionData) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *data
	m.store[username] = &cp
	return nil
}

// memHistoryRepo stores whole per-user lists the way the Redis repo does.
type memHistoryRepo struct {
	mu    sync.RWMutex
	store map[string][]model.PromptHistoryItem
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{store: make(map[string][]model.PromptHistoryItem)}
}

func (m *memHistoryRepo) List(ctx context.Context, username string) ([]model.PromptHistoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.store[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]model.PromptHistoryItem(nil), items...), nil
}

func (m *memHistoryRepo) Replace(ctx context.Context, username string, items []model.PromptHistoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[username] = append([]model.PromptHistoryItem(nil), items...)
	return nil
}

// memUserRepo keys accounts by username like the Postgres repo.
type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Credentials
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.Credentials)}
}

func (m *memUserRepo) Create(ctx context.Context, creds *model.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[creds.Username]; ok {
		return domain.ErrUsernameTaken
	}
	cp := *creds
	m.store[creds.Username] = &cp
	return nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// fakeProvider lets each test script the provider per operation. A nil
// function field panics, which is the test telling on itself.
type fakeProvider struct {
	jobsFn         func(ctx context.Context, prompt string) ([]model.JobListing, error)
	bannerFn       func(ctx context.Context, prompt string) ([]byte, error)
	availabilityFn func(ctx context.Context, prompt string) ([]model.CareerAvailability, error)
	textFn         func(ctx context.Context, prompt string) (string, error)
	speechFn       func(ctx context.Context, text string) ([]byte, error)
}

func (f *fakeProvider) GenerateJobListings(ctx context.Context, prompt string) ([]model.JobListing, error) {
	return f.jobsFn(ctx, prompt)
}

func (f *fakeProvider) GenerateBannerImage(ctx context.Context, prompt string) ([]byte, error) {
	return f.bannerFn(ctx, prompt)
}

func (f *fakeProvider) GenerateAvailability(ctx context.Context, prompt string) ([]model.CareerAvailability, error) {
	return f.availabilityFn(ctx, prompt)
}

func (f *fakeProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return f.textFn(ctx, prompt)
}

func (f *fakeProvider) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	return f.speechFn(ctx, text)
}

// inlineSerializer satisfies Serializer without real locking, for tests that
// do not exercise concurrency.
type inlineSerializer struct{}

func (inlineSerializer) Do(key string, fn func() error) error { return fn() }

func listings(urls ...string) []model.JobListing {
	out := make([]model.JobListing, 0, len(urls))
	for _, u := range urls {
		out = append(out, model.JobListing{
			JobTitle: "Junior Engineer",
			Company:  "Acme",
			Location: "Cape Town, South Africa",
			URL:      u,
			Source:   model.JobSource{Name: "LinkedIn", Rating: 4, Summary: "Solid for graduates."},
		})
	}
	return out
}
