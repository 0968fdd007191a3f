package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// SavedSearch is a user-pinned query. Created and deleted explicitly, never
// expired automatically.
type SavedSearch struct {
	ID    string         `json:"id"`
	Query JobSearchQuery `json:"query"`
}

func NewSavedSearch(query JobSearchQuery) SavedSearch {
	return SavedSearch{
		ID:    ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Query: query,
	}
}

// SessionData is everything persisted per username besides the prompt history
// (which has its own single-writer repository).
type SessionData struct {
	Favorites     []JobListing  `json:"favorites"`
	SavedSearches []SavedSearch `json:"savedSearches"`
}

// HasFavorite reports whether a listing with the given URL is favorited.
func (s *SessionData) HasFavorite(url string) bool {
	for _, f := range s.Favorites {
		if f.URL == url {
			return true
		}
	}
	return false
}

// HasSearch reports whether an equal query is already saved.
func (s *SessionData) HasSearch(q JobSearchQuery) bool {
	for _, sv := range s.SavedSearches {
		if sv.Query.Equal(q) {
			return true
		}
	}
	return false
}
