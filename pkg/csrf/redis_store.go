package csrf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps tokens in Redis under "<prefix>:<session id>".
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a Redis token store. An empty prefix defaults to "csrf".
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "csrf"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Set(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(sessionID), token, ttl).Err(); err != nil {
		return fmt.Errorf("csrf: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("csrf: redis get: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("csrf: redis delete: %w", err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}
