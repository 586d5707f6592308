// Package ratelimiter implements a fixed-window attempt limiter with
// pluggable storage and HTTP middleware.
//
// Each identifier (an email address, a client IP, a literal such as
// "anonymous") owns an Entry holding an attempt count and the instant its
// window expires. An attempt is handled as follows:
//
//  1. No entry, or the window has expired: a new entry is created with
//     Count 1 and ResetAt = now + window. The attempt is allowed.
//  2. Count has reached the limit: the attempt is denied and not counted.
//  3. Otherwise Count is incremented and the attempt is allowed.
//
// The window restarts wholesale on the first attempt after expiry; it does not
// slide. Because step 1 never looks at the limit, the first attempt for a
// fresh identifier is always admitted, even with a limit of zero.
//
// # Basic Usage
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.New(store) // 3 attempts per minute
//	if err != nil {
//		return err
//	}
//
//	if !limiter.Check(ctx, email) {
//		return ErrTooManyAttempts
//	}
//
// CheckWith overrides the limit and window for a single call. Allow returns
// the full Result for callers that need remaining attempts or reset time.
//
// # Stores
//
// MemoryStore keeps entries in a mutex-guarded map and sweeps expired entries
// in the background so the map does not grow without bound. RedisStore runs
// the algorithm as a Lua script so several application instances share one
// quota per identifier; Redis expires the keys itself.
//
// # Failure policy
//
// Check and CheckWith fail open: a store error is logged and the attempt is
// allowed. Use Allow to handle store errors explicitly.
//
// # HTTP Middleware
//
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.ByIP)).Post("/inquiries", h)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset and answers 429 with Retry-After on denial.
package ratelimiter
