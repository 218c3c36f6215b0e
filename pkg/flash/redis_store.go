package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

// RedisStore keeps flash values in Redis, keyed per session. GETDEL makes
// the read-then-consume atomic, so concurrent requests within one session
// cannot double-apply a snapshot.
type RedisStore struct {
	client   redis.UniversalClient
	sessions sessions
	cfg      settings
}

// NewRedisStore creates a Redis-backed flash store.
func NewRedisStore(client redis.UniversalClient, cookies *cookie.Manager, opts ...Option) *RedisStore {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &RedisStore{
		client:   client,
		sessions: sessions{cookies: cookies, cookieName: cfg.sessionCookie},
		cfg:      cfg,
	}
}

func (s *RedisStore) Put(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	return s.client.Set(ctx, s.sessions.key(sid, key), data, s.cfg.ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, dest any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	data, err := s.client.GetDel(ctx, s.sessions.key(sid, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNoSnapshot
		}
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
