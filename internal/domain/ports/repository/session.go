package repository

import (
	"context"

	"gradscout/internal/domain/model"
)

// SessionRepository persists per-user session state (favorites and saved
// searches) as one document per username. Get returns an empty SessionData,
// not ErrNotFound, for users with no stored state yet.
type SessionRepository interface {
	Get(ctx context.Context, username string) (*model.SessionData, error)
	Put(ctx context.Context, username string, data *model.SessionData) error
}
