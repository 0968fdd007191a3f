package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
)

// ErrPasswordMismatch blocks registration before anything touches storage.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase handles registration and login. Passwords are stored and
// compared in plaintext; that flaw is carried over deliberately from the
// product this backend serves and is out of scope to harden.
type AuthUseCase interface {
	Register(ctx context.Context, fullName, username, password, confirm string) (model.User, error)
	Login(ctx context.Context, username, password string) (model.User, error)
}

type authUC struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	log      *zerolog.Logger
}

func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, logger *zerolog.Logger) *authUC {
	return &authUC{users: users, sessions: sessions, log: logger}
}

func (a *authUC) Register(ctx context.Context, fullName, username, password, confirm string) (model.User, error) {
	if password != confirm {
		return model.User{}, ErrPasswordMismatch
	}
	creds, err := model.NewCredentials(fullName, username, password)
	if err != nil {
		return model.User{}, err
	}
	if err := a.users.Create(ctx, creds); err != nil {
		return model.User{}, err
	}
	// A fresh account starts with an explicitly empty session document.
	if err := a.sessions.Put(ctx, creds.Username, &model.SessionData{
		Favorites:     []model.JobListing{},
		SavedSearches: []model.SavedSearch{},
	}); err != nil {
		a.log.Warn().Err(err).Str("username", creds.Username).Msg("seeding session failed")
	}
	return creds.User(), nil
}

func (a *authUC) Login(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, domain.ErrInvalidArgument
	}
	creds, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.User{}, domain.ErrBadCredentials
		}
		return model.User{}, err
	}
	if creds.Password != password {
		return model.User{}, domain.ErrBadCredentials
	}
	return creds.User(), nil
}
