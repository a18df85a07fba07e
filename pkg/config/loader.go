package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry holds the parsed value for one config type. A failed parse is not
// cached, so a later call can succeed once the environment is fixed.
type entry struct {
	mu     sync.Mutex
	loaded bool
	value  any
}

var (
	cache     sync.Map // reflect.Type -> *entry
	dotenvOne sync.Once
	dotenvErr error
)

// LoadDotenv reads the given .env files (default ".env") into the process
// environment without overriding variables that are already set. Only the
// first call has an effect. A missing file is not an error.
func LoadDotenv(files ...string) error {
	dotenvOne.Do(func() {
		if len(files) == 0 {
			files = []string{".env"}
		}
		for _, f := range files {
			if err := godotenv.Load(f); err != nil && !isNotExist(err) {
				dotenvErr = errors.Join(ErrLoadingDotenv, err)
				return
			}
		}
	})
	return dotenvErr
}

// Load parses environment variables into v according to its `env` tags.
// Each config type is parsed once; later calls copy the cached value.
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := LoadDotenv(); err != nil {
		return err
	}

	typ := reflect.TypeFor[T]()
	e, _ := cache.LoadOrStore(typ, &entry{})
	ent := e.(*entry)

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if !ent.loaded {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			return errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", typ, err))
		}
		ent.value = parsed
		ent.loaded = true
	}

	*v = ent.value.(T)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it in main for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached config. Intended for tests.
func Reset() {
	cache.Clear()
}
