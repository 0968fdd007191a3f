package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gradscout/internal/domain/model"
	"gradscout/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo stores one JSON document per username. Session data never
// expires; logout detaches it from the active session without deleting it.
type SessionRepo struct {
	client RedisClient
}

func NewSessionRepo(client RedisClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) key(username string) string {
	return fmt.Sprintf("session:%s", username)
}

func (r *SessionRepo) Get(ctx context.Context, username string) (*model.SessionData, error) {
	raw, err := r.client.Get(ctx, r.key(username))
	if errors.Is(err, redis.Nil) {
		return &model.SessionData{}, nil
	}
	if err != nil {
		return nil, err
	}
	var data model.SessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *SessionRepo) Put(ctx context.Context, username string, data *model.SessionData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(username), b, 0)
}
