package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/cookie"
)

const testSecret = "this-is-a-very-long-secret-key-32-chars-long"

func newManager(t *testing.T) *cookie.Manager {
	t.Helper()
	mgr, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	return mgr
}

// requestWithCookies copies Set-Cookie headers from a recorder onto a fresh
// request, simulating the browser's next visit.
func requestWithCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secrets []string
		wantErr error
	}{
		{"no secrets", []string{}, cookie.ErrNoSecret},
		{"empty secrets", []string{"", ""}, cookie.ErrNoSecret},
		{"secret too short", []string{"short"}, cookie.ErrSecretTooShort},
		{"valid secret", []string{testSecret}, nil},
		{"rotation pair", []string{testSecret, "previous-very-long-secret-key-32-chars-ok"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlainCookies(t *testing.T) {
	t.Parallel()
	mgr := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.Set(w, "theme", "dark"))

	got, err := mgr.Get(requestWithCookies(w), "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	_, err = mgr.Get(httptest.NewRequest(http.MethodGet, "/", nil), "theme")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSignedCookies(t *testing.T) {
	t.Parallel()
	mgr := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.SetSigned(w, "uid", "42"))

	got, err := mgr.GetSigned(requestWithCookies(w), "uid")
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	t.Run("tampered value rejected", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "uid", Value: "NDM=|bogus-signature"})
		_, err := mgr.GetSigned(r, "uid")
		assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
	})

	t.Run("malformed value rejected", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "uid", Value: "no-separator"})
		_, err := mgr.GetSigned(r, "uid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestEncryptedCookies(t *testing.T) {
	t.Parallel()
	mgr := newManager(t)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.SetEncrypted(w, "payload", `{"a":1}`))

	// Ciphertext must not leak the plaintext.
	raw := w.Result().Cookies()[0].Value
	assert.NotContains(t, raw, "a")

	got, err := mgr.GetEncrypted(requestWithCookies(w), "payload")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)
}

func TestKeyRotation(t *testing.T) {
	t.Parallel()

	oldMgr, err := cookie.New([]string{"previous-very-long-secret-key-32-chars-ok"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, oldMgr.SetEncrypted(w, "payload", "legacy"))

	rotated, err := cookie.New([]string{testSecret, "previous-very-long-secret-key-32-chars-ok"})
	require.NoError(t, err)

	got, err := rotated.GetEncrypted(requestWithCookies(w), "payload")
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
}

func TestFlash(t *testing.T) {
	t.Parallel()
	mgr := newManager(t)

	type snapshot struct {
		Status string              `json:"status"`
		Errors map[string][]string `json:"errors"`
	}

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/", nil)
	in := snapshot{Status: "failed", Errors: map[string][]string{"email": {"invalid format"}}}
	require.NoError(t, mgr.SetFlash(w1, r1, "contact", in))

	// Next request reads the flash and the cookie is deleted.
	w2 := httptest.NewRecorder()
	r2 := requestWithCookies(w1)

	var out snapshot
	require.NoError(t, mgr.GetFlash(w2, r2, "contact", &out))
	assert.Equal(t, in, out)

	var deleted bool
	for _, c := range w2.Result().Cookies() {
		if c.MaxAge < 0 {
			deleted = true
		}
	}
	assert.True(t, deleted, "flash cookie should be expired after reading")

	t.Run("missing flash", func(t *testing.T) {
		t.Parallel()
		var out snapshot
		err := mgr.GetFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), "contact", &out)
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.Config{
		Secrets:  testSecret + " , ",
		Path:     "/app",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	mgr, err := cookie.NewFromConfig(cfg)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, mgr.Set(w, "k", "v"))
	c := w.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
