package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache        sync.Map // reflect.Type -> *cacheEntry
	dotenvLoaded sync.Once
)

func loadDotenv() {
	dotenvLoaded.Do(func() {
		// The file is optional.
		_ = godotenv.Load()
	})
}

// Load parses environment variables into v. The first successful result for
// a type is cached and copied into v on subsequent calls.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDotenv()

	key := reflect.TypeFor[T]()
	raw, _ := cache.LoadOrStore(key, &cacheEntry{})
	entry := raw.(*cacheEntry)

	entry.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			entry.err = errors.Join(ErrParsingConfig, err)
			return
		}
		entry.value = parsed
	})

	if entry.err != nil {
		// Allow a later retry once the environment is fixed.
		cache.CompareAndDelete(key, entry)
		return entry.err
	}

	*v = entry.value.(T)
	return nil
}

// MustLoad is Load that panics on error. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration %T: %v", *v, err))
	}
}

// Parse parses environment variables into a fresh T without caching.
func Parse[T any]() (T, error) {
	loadDotenv()

	var v T
	if err := env.Parse(&v); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}
