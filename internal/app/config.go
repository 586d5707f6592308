package app

import (
	"time"

	"github.com/dmitrymomot/leadhub/pkg/httpserver"
	"github.com/dmitrymomot/leadhub/pkg/pg"
	"github.com/dmitrymomot/leadhub/pkg/ratelimiter"
	"github.com/dmitrymomot/leadhub/pkg/redis"
	"github.com/dmitrymomot/leadhub/pkg/session"
)

// Backends for sessions, CSRF slots and rate limit counters.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LogConfig is loaded on its own so that commands without the full server
// configuration can still log.
type LogConfig struct {
	AppName string `env:"APP_NAME" envDefault:"leadhub"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Level   string `env:"LOG_LEVEL"` // overrides the environment default
}

type Config struct {
	Log LogConfig

	StateBackend   string        `env:"STATE_BACKEND" envDefault:"memory"` // sessions and CSRF: memory or redis
	InquiryIPLimit int           `env:"INQUIRY_IP_MAX_ATTEMPTS" envDefault:"30"`
	BcryptCost     int           `env:"BCRYPT_COST" envDefault:"12"`
	HealthTimeout  time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"3s"`

	HTTP      httpserver.Config
	Postgres  pg.Config
	Redis     redis.Config
	RateLimit ratelimiter.Config
	Session   session.Config
}

// usesRedis reports whether any backend is configured as redis.
func (c Config) usesRedis() bool {
	return c.StateBackend == BackendRedis || c.RateLimit.Backend == BackendRedis
}
