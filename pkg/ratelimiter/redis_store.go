package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript runs one fixed-window attempt atomically.
// KEYS[1] entry hash; ARGV: now ms, max attempts, reset ms for a new window,
// absolute expiry ms for a new window.
// Returns {allowed, count, reset ms}.
var hitScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local count = tonumber(redis.call("HGET", KEYS[1], "count"))
local reset = tonumber(redis.call("HGET", KEYS[1], "reset"))

if count == nil or reset == nil or now > reset then
	redis.call("HSET", KEYS[1], "count", 1, "reset", ARGV[3])
	redis.call("PEXPIREAT", KEYS[1], ARGV[4])
	return {1, 1, tonumber(ARGV[3])}
end

if count >= limit then
	return {0, count, reset}
end

count = redis.call("HINCRBY", KEYS[1], "count", 1)
return {1, count, reset}
`)

// RedisStore implements Store on Redis so that several instances share quotas.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Defaults to "ratelimit".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// WithRedisClock replaces time.Now for window arithmetic.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(rs *RedisStore) {
		if now != nil {
			rs.now = now
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.Cmdable, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: "ratelimit",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Hit applies one attempt for key.
func (rs *RedisStore) Hit(ctx context.Context, key string, maxAttempts int, window time.Duration) (Entry, bool, error) {
	now := rs.now()
	resetAt := now.Add(window).UnixMilli()

	reply, err := hitScript.Run(ctx, rs.client, []string{rs.key(key)},
		strconv.FormatInt(now.UnixMilli(), 10),
		maxAttempts,
		strconv.FormatInt(resetAt, 10),
		strconv.FormatInt(resetAt+1, 10),
	).Int64Slice()
	if err != nil {
		return Entry{}, false, fmt.Errorf("ratelimiter: redis hit: %w", err)
	}
	if len(reply) != 3 {
		return Entry{}, false, errors.Join(ErrUnexpectedReply, fmt.Errorf("got %d values", len(reply)))
	}

	return Entry{
		Count:   int(reply[1]),
		ResetAt: time.UnixMilli(reply[2]),
	}, reply[0] == 1, nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimiter: redis reset: %w", err)
	}
	return nil
}

func (rs *RedisStore) key(k string) string {
	return rs.prefix + ":" + k
}
