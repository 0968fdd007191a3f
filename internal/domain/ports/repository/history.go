package repository

import (
	"context"

	"gradscout/internal/domain/model"
)

// PromptHistoryRepository stores the per-user prompt audit log, newest first.
// Replace is a whole-list write; callers are expected to serialize
// read-modify-write cycles per user (see usecase.PromptHistoryLog).
type PromptHistoryRepository interface {
	List(ctx context.Context, username string) ([]model.PromptHistoryItem, error)
	Replace(ctx context.Context, username string, items []model.PromptHistoryItem) error
}
