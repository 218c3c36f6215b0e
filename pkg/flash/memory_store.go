package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps flash values in process memory, keyed per session.
// Intended for tests and single-process deployments; state is lost on
// restart.
type MemoryStore struct {
	sessions sessions
	ttl      time.Duration

	mu      sync.Mutex
	entries map[string]memoryEntry
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory flash store. The cookie manager signs
// the per-session identity cookie.
func NewMemoryStore(cookies *cookie.Manager, opts ...Option) *MemoryStore {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	store := &MemoryStore{
		sessions: sessions{cookies: cookies, cookieName: cfg.sessionCookie},
		ttl:      cfg.ttl,
		entries:  make(map[string]memoryEntry),
		done:     make(chan struct{}),
	}

	if cfg.cleanupInterval > 0 {
		store.ticker = time.NewTicker(cfg.cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (s *MemoryStore) Put(_ context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	s.mu.Lock()
	s.entries[s.sessions.key(sid, key)] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Take(_ context.Context, w http.ResponseWriter, r *http.Request, key string, dest any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	full := s.sessions.key(sid, key)

	// Load and delete under one lock so the consume is atomic per session.
	s.mu.Lock()
	entry, ok := s.entries[full]
	if ok {
		delete(s.entries, full)
	}
	s.mu.Unlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrNoSnapshot
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

// Close stops the background cleanup loop.
func (s *MemoryStore) Close() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			now := time.Now()
			s.mu.Lock()
			for k, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
