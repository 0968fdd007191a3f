package repository

import (
	"context"

	"gradscout/internal/domain/model"
)

// UserRepository stores account credentials. Create returns
// domain.ErrUsernameTaken when the username is already registered;
// FindByUsername returns domain.ErrNotFound for unknown users.
type UserRepository interface {
	Create(ctx context.Context, creds *model.Credentials) error
	FindByUsername(ctx context.Context, username string) (*model.Credentials, error)
}
