package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// SessionUseCase manages per-user favorites and saved searches. All mutations
// persist immediately.
type SessionUseCase interface {
	// ToggleFavorite adds the listing when absent and removes it when present,
	// keyed by URL. Returns whether the listing is favorited afterwards.
	ToggleFavorite(ctx context.Context, username string, listing model.JobListing) (bool, error)
	Favorites(ctx context.Context, username string) ([]model.JobListing, error)

	// SaveSearch stores the query unless a structurally equal one exists.
	// Returns whether a new entry was created.
	SaveSearch(ctx context.Context, username string, query model.JobSearchQuery) (bool, error)
	SavedSearches(ctx context.Context, username string) ([]model.SavedSearch, error)
	DeleteSearch(ctx context.Context, username, id string) error
}

type sessionUC struct {
	sessions repository.SessionRepository
	log      *zerolog.Logger
}

func NewSessionUseCase(sessions repository.SessionRepository, logger *zerolog.Logger) *sessionUC {
	return &sessionUC{sessions: sessions, log: logger}
}

func (s *sessionUC) ToggleFavorite(ctx context.Context, username string, listing model.JobListing) (bool, error) {
	if username == "" {
		return false, domain.ErrNotSignedIn
	}
	if listing.URL == "" {
		return false, domain.ErrInvalidArgument
	}
	data, err := s.sessions.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if data.HasFavorite(listing.URL) {
		kept := data.Favorites[:0:0]
		for _, f := range data.Favorites {
			if f.URL != listing.URL {
				kept = append(kept, f)
			}
		}
		data.Favorites = kept
		return false, s.sessions.Put(ctx, username, data)
	}
	data.Favorites = append(data.Favorites, listing)
	return true, s.sessions.Put(ctx, username, data)
}

func (s *sessionUC) Favorites(ctx context.Context, username string) ([]model.JobListing, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	data, err := s.sessions.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return data.Favorites, nil
}

func (s *sessionUC) SaveSearch(ctx context.Context, username string, query model.JobSearchQuery) (bool, error) {
	if username == "" {
		return false, domain.ErrNotSignedIn
	}
	query, err := model.NewJobSearchQuery(query.CareerField, query.Location)
	if err != nil {
		return false, err
	}
	data, err := s.sessions.Get(ctx, username)
	if err != nil {
		return false, err
	}
	if data.HasSearch(query) {
		return false, nil
	}
	data.SavedSearches = append(data.SavedSearches, model.NewSavedSearch(query))
	return true, s.sessions.Put(ctx, username, data)
}

func (s *sessionUC) SavedSearches(ctx context.Context, username string) ([]model.SavedSearch, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	data, err := s.sessions.Get(ctx, username)
	if err != nil {
		return nil, err
	}
	return data.SavedSearches, nil
}

func (s *sessionUC) DeleteSearch(ctx context.Context, username, id string) error {
	if username == "" {
		return domain.ErrNotSignedIn
	}
	data, err := s.sessions.Get(ctx, username)
	if err != nil {
		return err
	}
	kept := data.SavedSearches[:0:0]
	for _, sv := range data.SavedSearches {
		if sv.ID != id {
			kept = append(kept, sv)
		}
	}
	data.SavedSearches = kept
	return s.sessions.Put(ctx, username, data)
}
