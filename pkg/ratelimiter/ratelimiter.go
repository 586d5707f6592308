package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/leadhub/pkg/logger"
)

// Limiter checks attempts against a Store using default limits.
type Limiter struct {
	store       Store
	namespace   string
	maxAttempts int
	window      time.Duration
	log         *slog.Logger
	observers   []func(key string, allowed bool)
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithMaxAttempts sets the default number of attempts per window.
func WithMaxAttempts(n int) Option {
	return func(l *Limiter) {
		l.maxAttempts = n
	}
}

// WithWindow sets the default window length.
func WithWindow(d time.Duration) Option {
	return func(l *Limiter) {
		l.window = d
	}
}

// WithNamespace prefixes every key with ns so that limiters sharing a store
// keep separate buckets.
func WithNamespace(ns string) Option {
	return func(l *Limiter) {
		l.namespace = ns
	}
}

// WithConfig applies MaxAttempts and Window from cfg. Zero values are ignored.
func WithConfig(cfg Config) Option {
	return func(l *Limiter) {
		if cfg.MaxAttempts > 0 {
			l.maxAttempts = cfg.MaxAttempts
		}
		if cfg.Window > 0 {
			l.window = cfg.Window
		}
	}
}

// WithLogger sets the logger used to report store failures.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}

// WithObserver registers a callback invoked after every decision.
func WithObserver(fn func(key string, allowed bool)) Option {
	return func(l *Limiter) {
		if fn != nil {
			l.observers = append(l.observers, fn)
		}
	}
}

// New creates a limiter with DefaultMaxAttempts per DefaultWindow unless
// overridden by options.
func New(store Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	l := &Limiter{
		store:       store,
		maxAttempts: DefaultMaxAttempts,
		window:      DefaultWindow,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := validate(l.maxAttempts, l.window); err != nil {
		return nil, fmt.Errorf("%w: max attempts %d, window %v", err, l.maxAttempts, l.window)
	}

	return l, nil
}

// Allow records an attempt for key using the default limits.
func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	return l.AllowWith(ctx, key, l.maxAttempts, l.window)
}

// AllowWith records an attempt for key using the given limits.
func (l *Limiter) AllowWith(ctx context.Context, key string, maxAttempts int, window time.Duration) (*Result, error) {
	if err := validate(maxAttempts, window); err != nil {
		return nil, fmt.Errorf("%w: max attempts %d, window %v", err, maxAttempts, window)
	}

	entry, allowed, err := l.store.Hit(ctx, l.storeKey(key), maxAttempts, window)
	if err != nil {
		return nil, err
	}

	for _, fn := range l.observers {
		fn(key, allowed)
	}

	return &Result{
		Allowed:   allowed,
		Limit:     maxAttempts,
		Remaining: max(0, maxAttempts-entry.Count),
		ResetAt:   entry.ResetAt,
	}, nil
}

// Check reports whether an attempt for key is allowed under the default
// limits. Store failures are logged and treated as allowed. Invalid limits
// deny the attempt.
func (l *Limiter) Check(ctx context.Context, key string) bool {
	return l.CheckWith(ctx, key, l.maxAttempts, l.window)
}

// CheckWith is Check with per-call limits.
func (l *Limiter) CheckWith(ctx context.Context, key string, maxAttempts int, window time.Duration) bool {
	result, err := l.AllowWith(ctx, key, maxAttempts, window)
	if errors.Is(err, ErrInvalidConfig) {
		l.log.ErrorContext(ctx, "rate limit check rejected invalid limits",
			logger.Component("ratelimiter"),
			logger.Error(err),
		)
		return false
	}
	if err != nil {
		l.log.WarnContext(ctx, "rate limit check failed, allowing attempt",
			logger.Component("ratelimiter"),
			logger.Error(err),
		)
		return true
	}
	return result.Allowed
}

// Reset clears the entry for key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, l.storeKey(key))
}

func (l *Limiter) storeKey(key string) string {
	if l.namespace == "" {
		return key
	}
	return l.namespace + ":" + key
}
