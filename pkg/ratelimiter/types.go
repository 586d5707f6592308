package ratelimiter

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultWindow      = time.Minute
)

// Entry is the per-identifier window state.
// Count is at least 1 whenever an entry exists.
type Entry struct {
	Count   int
	ResetAt time.Time
}

// Result contains the outcome of a single attempt.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long to wait before the next attempt can succeed.
// Returns 0 if the attempt was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store applies the fixed-window algorithm atomically per key.
type Store interface {
	// Hit records one attempt for key and reports the entry state after the
	// attempt together with whether it was admitted.
	Hit(ctx context.Context, key string, maxAttempts int, window time.Duration) (Entry, bool, error)

	// Reset forgets the entry for key.
	Reset(ctx context.Context, key string) error
}

// Config holds limiter defaults loaded from the environment.
type Config struct {
	MaxAttempts     int           `env:"RATE_LIMIT_MAX_ATTEMPTS" envDefault:"3"`
	Window          time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	Backend         string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"` // memory or redis
	RedisPrefix     string        `env:"RATE_LIMIT_REDIS_PREFIX" envDefault:"ratelimit"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
}

func validate(maxAttempts int, window time.Duration) error {
	if maxAttempts < 0 {
		return ErrInvalidConfig
	}
	if window < 0 {
		return ErrInvalidConfig
	}
	return nil
}
