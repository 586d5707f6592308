// Package redis connects to Redis with go-redis/v9 and exposes a readiness
// probe. The client backs the shared rate-limit and CSRF token stores when
// RATE_LIMIT_BACKEND=redis.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := redis.Healthcheck(client)
package redis
