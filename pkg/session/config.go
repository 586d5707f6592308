package session

import "time"

type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"leadhub_sid"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	Secret          string        `env:"SESSION_SECRET,required"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`
}
