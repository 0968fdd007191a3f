package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
	"gradscout/internal/infra/metrics"
)

// Serializer runs fn exclusively among all calls sharing the same key.
type Serializer interface {
	Do(key string, fn func() error) error
}

// Compile-time check
var _ PromptHistoryLog = (*promptHistoryLog)(nil)

// PromptHistoryLog is the append-only per-user audit log of prompts sent to
// the AI provider. Entries are prepended (newest first), never mutated, and
// never expire.
type PromptHistoryLog interface {
	Append(ctx context.Context, username string, t model.PromptType, prompt string, payload model.HistoryPayload) error
	List(ctx context.Context, username string) ([]model.PromptHistoryItem, error)
}

type promptHistoryLog struct {
	repo repository.PromptHistoryRepository
	ser  Serializer
	log  *zerolog.Logger
}

func NewPromptHistoryLog(repo repository.PromptHistoryRepository, ser Serializer, logger *zerolog.Logger) *promptHistoryLog {
	return &promptHistoryLog{repo: repo, ser: ser, log: logger}
}

// Append is a read-modify-write on the user's stored list. Concurrent appends
// for the same user (overlapping search sub-operations) are serialized through
// the per-user queue so no entry is lost.
func (l *promptHistoryLog) Append(ctx context.Context, username string, t model.PromptType, prompt string, payload model.HistoryPayload) error {
	if username == "" {
		return domain.ErrInvalidArgument
	}
	err := l.ser.Do(username, func() error {
		items, err := l.repo.List(ctx, username)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		entry := model.NewPromptHistoryItem(t, prompt, payload)
		items = append([]model.PromptHistoryItem{entry}, items...)
		return l.repo.Replace(ctx, username, items)
	})
	metrics.IncHistoryAppend(string(t), err == nil)
	return err
}

func (l *promptHistoryLog) List(ctx context.Context, username string) ([]model.PromptHistoryItem, error) {
	if username == "" {
		return nil, domain.ErrNotSignedIn
	}
	items, err := l.repo.List(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return []model.PromptHistoryItem{}, nil
	}
	return items, err
}
