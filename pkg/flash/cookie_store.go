package flash

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

// CookieStore flashes values through encrypted cookies. No server-side state:
// the snapshot rides along with the redirect and the cookie is deleted the
// moment it is read.
type CookieStore struct {
	cookies *cookie.Manager
}

// NewCookieStore creates a cookie-backed flash store.
func NewCookieStore(cookies *cookie.Manager) *CookieStore {
	return &CookieStore{cookies: cookies}
}

func (s *CookieStore) Put(_ context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	if err := s.cookies.SetFlash(w, r, key, value); err != nil {
		return errors.Join(ErrEncode, err)
	}
	return nil
}

func (s *CookieStore) Take(_ context.Context, w http.ResponseWriter, r *http.Request, key string, dest any) error {
	err := s.cookies.GetFlash(w, r, key, dest)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cookie.ErrCookieNotFound),
		errors.Is(err, cookie.ErrDecryptionFailed),
		errors.Is(err, cookie.ErrInvalidFormat):
		// Unreadable is indistinguishable from absent for callers.
		return ErrNoSnapshot
	default:
		return errors.Join(ErrDecode, err)
	}
}
