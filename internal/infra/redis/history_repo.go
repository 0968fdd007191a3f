package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gradscout/internal/domain"
	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
)

var _ repository.PromptHistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo stores the whole newest-first prompt list per username. No
// retention cap is enforced.
type HistoryRepo struct {
	client RedisClient
}

func NewHistoryRepo(client RedisClient) *HistoryRepo {
	return &HistoryRepo{client: client}
}

func (r *HistoryRepo) key(username string) string {
	return fmt.Sprintf("prompt_history:%s", username)
}

func (r *HistoryRepo) List(ctx context.Context, username string) ([]model.PromptHistoryItem, error) {
	raw, err := r.client.Get(ctx, r.key(username))
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var items []model.PromptHistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *HistoryRepo) Replace(ctx context.Context, username string, items []model.PromptHistoryItem) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(username), b, 0)
}
