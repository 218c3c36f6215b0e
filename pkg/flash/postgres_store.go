package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

// Schema is the table PostgresStore expects. Run it once during your
// application's migrations.
const Schema = `
CREATE TABLE IF NOT EXISTS form_flash (
    session_id TEXT        NOT NULL,
    form_key   TEXT        NOT NULL,
    data       JSONB       NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (session_id, form_key)
);
`

// Querier is the subset of pgx operations the store needs.
// *pgxpool.Pool satisfies it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps flash values in Postgres. DELETE ... RETURNING makes
// consumption atomic per session and key.
type PostgresStore struct {
	db       Querier
	sessions sessions
	cfg      settings
}

// NewPostgresStore creates a Postgres-backed flash store.
func NewPostgresStore(db Querier, cookies *cookie.Manager, opts ...Option) *PostgresStore {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &PostgresStore{
		db:       db,
		sessions: sessions{cookies: cookies, cookieName: cfg.sessionCookie},
		cfg:      cfg,
	}
}

func (s *PostgresStore) Put(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO form_flash (session_id, form_key, data, expires_at)
		VALUES ($1, $2, $3, now() + $4)
		ON CONFLICT (session_id, form_key)
		DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		sid, key, data, s.cfg.ttl)
	return err
}

func (s *PostgresStore) Take(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, dest any) error {
	sid, err := s.sessions.id(w, r)
	if err != nil {
		return err
	}

	var data []byte
	err = s.db.QueryRow(ctx, `
		DELETE FROM form_flash
		WHERE session_id = $1 AND form_key = $2 AND expires_at > now()
		RETURNING data`,
		sid, key).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoSnapshot
		}
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

// Cleanup removes expired rows. Call it periodically from a background job.
func (s *PostgresStore) Cleanup(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DELETE FROM form_flash WHERE expires_at <= now()`)
	return err
}
