// File: internal/infra/web/mocks_test.go
package web

import (
	"context"
	"errors"
	"sync"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/usecase"
)

// stubAuth runs the real registration rules against an in-memory account map.
type stubAuth struct {
	mu       sync.Mutex
	accounts map[string]string // username -> password
}

func newStubAuth() *stubAuth {
	return &stubAuth{accounts: make(map[string]string)}
}

func (s *stubAuth) Register(_ context.Context, fullName, username, password, confirm string) (model.User, error) {
	if password != confirm {
		return model.User{}, usecase.ErrPasswordMismatch
	}
	if fullName == "" || username == "" || password == "" {
		return model.User{}, domain.ErrInvalidArgument
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[username]; ok {
		return model.User{}, domain.ErrUsernameTaken
	}
	s.accounts[username] = password
	return model.User{FullName: fullName, Username: username}, nil
}

func (s *stubAuth) Login(_ context.Context, username, password string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pw, ok := s.accounts[username]
	if !ok || pw != password {
		return model.User{}, domain.ErrBadCredentials
	}
	return model.User{Username: username}, nil
}

// stubSession keeps favorites and saved searches in memory per username.
type stubSession struct {
	mu    sync.Mutex
	store map[string]*model.SessionData
}

func newStubSession() *stubSession {
	return &stubSession{store: make(map[string]*model.SessionData)}
}

func (s *stubSession) data(username string) *model.SessionData {
	d, ok := s.store[username]
	if !ok {
		d = &model.SessionData{}
		s.store[username] = d
	}
	return d
}

func (s *stubSession) ToggleFavorite(_ context.Context, username string, listing model.JobListing) (bool, error) {
	if username == "" {
		return false, domain.ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data(username)
	if d.HasFavorite(listing.URL) {
		kept := d.Favorites[:0:0]
		for _, f := range d.Favorites {
			if f.URL != listing.URL {
				kept = append(kept, f)
			}
		}
		d.Favorites = kept
		return false, nil
	}
	d.Favorites = append(d.Favorites, listing)
	return true, nil
}

func (s *stubSession) Favorites(_ context.Context, username string) ([]model.JobListing, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.JobListing(nil), s.data(username).Favorites...), nil
}

func (s *stubSession) SaveSearch(_ context.Context, username string, query model.JobSearchQuery) (bool, error) {
	if username == "" {
		return false, domain.ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data(username)
	if d.HasSearch(query) {
		return false, nil
	}
	d.SavedSearches = append(d.SavedSearches, model.NewSavedSearch(query))
	return true, nil
}

func (s *stubSession) SavedSearches(_ context.Context, username string) ([]model.SavedSearch, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SavedSearch(nil), s.data(username).SavedSearches...), nil
}

func (s *stubSession) DeleteSearch(_ context.Context, username, id string) error {
	if username == "" {
		return domain.ErrNotSignedIn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.data(username)
	kept := d.SavedSearches[:0:0]
	for _, sv := range d.SavedSearches {
		if sv.ID != id {
			kept = append(kept, sv)
		}
	}
	d.SavedSearches = kept
	return nil
}

// stubSearch scripts the orchestrator per test.
type stubSearch struct {
	searchFn  func(ctx context.Context, q model.JobSearchQuery, username string) (<-chan usecase.SearchUpdate, error)
	state     usecase.SearchState
	summaryFn func(ctx context.Context, username string) (string, error)
}

func (s *stubSearch) Search(ctx context.Context, q model.JobSearchQuery, username string) (<-chan usecase.SearchUpdate, error) {
	return s.searchFn(ctx, q, username)
}

func (s *stubSearch) Snapshot() usecase.SearchState { return s.state }

func (s *stubSearch) AudioSummary(ctx context.Context, username string) (string, error) {
	return s.summaryFn(ctx, username)
}

// stubHistory returns a fixed list for any signed-in user.
type stubHistory struct {
	items []model.PromptHistoryItem
}

func (h *stubHistory) Append(_ context.Context, username string, t model.PromptType, prompt string, payload model.HistoryPayload) error {
	if username == "" {
		return domain.ErrInvalidArgument
	}
	h.items = append([]model.PromptHistoryItem{model.NewPromptHistoryItem(t, prompt, payload)}, h.items...)
	return nil
}

func (h *stubHistory) List(_ context.Context, username string) ([]model.PromptHistoryItem, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	return h.items, nil
}

var errStub = errors.New("stub failure")
