package flash

import (
	"context"
	"net/http"
	"time"
)

// Store is the one-shot flash capability.
//
// Put serializes value under key for the current browser; Take deserializes
// it into dest and consumes it so a second Take for the same key returns
// ErrNoSnapshot until another Put happens. Consumption must be atomic with
// respect to a single session.
type Store interface {
	Put(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error
	Take(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, dest any) error
}

// Config holds flash store settings, loadable from the environment via
// pkg/config.
type Config struct {
	SessionCookie   string        `env:"FORM_FLASH_COOKIE" envDefault:"__form_flash_sid"`
	TTL             time.Duration `env:"FORM_FLASH_TTL" envDefault:"10m"`
	CleanupInterval time.Duration `env:"FORM_FLASH_CLEANUP_INTERVAL" envDefault:"5m"`
}

// Option configures server-side stores.
type Option func(*settings)

type settings struct {
	sessionCookie   string
	ttl             time.Duration
	cleanupInterval time.Duration
}

func defaultSettings() settings {
	return settings{
		sessionCookie:   "__form_flash_sid",
		ttl:             10 * time.Minute,
		cleanupInterval: 5 * time.Minute,
	}
}

// WithTTL bounds how long an unconsumed flash survives.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSessionCookie sets the name of the signed cookie that identifies the
// browser session for server-side stores.
func WithSessionCookie(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.sessionCookie = name
		}
	}
}

// WithCleanupInterval sets how often MemoryStore evicts expired entries.
// Zero disables the background cleanup loop.
func WithCleanupInterval(d time.Duration) Option {
	return func(s *settings) {
		s.cleanupInterval = d
	}
}

// WithConfig applies a Config to the store settings.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		if cfg.SessionCookie != "" {
			s.sessionCookie = cfg.SessionCookie
		}
		if cfg.TTL > 0 {
			s.ttl = cfg.TTL
		}
		s.cleanupInterval = cfg.CleanupInterval
	}
}
