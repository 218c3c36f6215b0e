package flash

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

// sessions resolves a stable per-browser identifier for server-side stores.
// The identifier lives in a signed cookie; a tampered or missing cookie
// yields a fresh identity, which simply means no flash to restore.
type sessions struct {
	cookies    *cookie.Manager
	cookieName string
}

func (s sessions) id(w http.ResponseWriter, r *http.Request) (string, error) {
	if v, err := s.cookies.GetSigned(r, s.cookieName); err == nil && v != "" {
		return v, nil
	}

	id := uuid.NewString()
	if err := s.cookies.SetSigned(w, s.cookieName, id); err != nil {
		return "", errors.Join(ErrSession, err)
	}
	return id, nil
}

func (s sessions) key(sid, key string) string {
	return "form_flash:" + sid + ":" + key
}
