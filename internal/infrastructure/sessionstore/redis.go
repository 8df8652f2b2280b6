package sessionstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// Redis keeps the record under a single key without expiry.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis wraps client. An empty key falls back to DefaultKey.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	s, ok := decode(raw)
	if !ok {
		_ = r.client.Del(ctx, r.key).Err()
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func (r *Redis) Save(ctx context.Context, s *domain.Session) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
