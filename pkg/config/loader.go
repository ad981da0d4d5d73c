package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu    sync.Mutex
	cache = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load fills v from environment variables using caarlos0/env struct tags.
// The first call reads ./.env if present (existing variables win). A parsed
// configuration is cached per type; later calls copy the cached value.
//
//	type Config struct {
//		LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	cache[key] = *v
	return nil
}

// MustLoad is Load that panics on error. Meant for process start-up.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reload drops the cached value for T and parses it again.
func Reload[T any](v *T) error {
	mu.Lock()
	delete(cache, reflect.TypeFor[T]())
	mu.Unlock()
	return Load(v)
}

// LoadEnv reads the given dotenv files, later files overriding earlier ones
// and the process environment. Without arguments it reads ./.env.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Reset clears the cache. Meant for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
