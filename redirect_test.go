package formkit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/cookie"
	"github.com/dmitrymomot/formkit/pkg/flash"
)

func newFlashStore(t *testing.T) flash.Store {
	t.Helper()
	mgr, err := cookie.New([]string{"this-is-a-very-long-secret-key-32-chars-long"})
	require.NoError(t, err)
	store := flash.NewMemoryStore(mgr, flash.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	return store
}

// carry copies session cookies from a response onto the next request.
func carry(w *httptest.ResponseRecorder, r *http.Request) *http.Request {
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRedirect_Plain(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	require.NoError(t, formkit.Redirect("/thanks").Render(w, r))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/thanks", w.Header().Get("Location"))
}

func TestRedirect_DataStar(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/contact", nil)
	r.Header.Set("Accept", "text/event-stream")
	require.NoError(t, formkit.Redirect("/thanks").Render(w, r))

	// SSE-driven redirect, not a Location header
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, w.Body.String(), "/thanks")
}

func TestRedirect_FlashAndRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFlashStore(t)

	// POST: validation fails, redirect flashes state
	submitted, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	submitted.Validate(ctx, formkit.MapValues{"email": "nope"})
	require.True(t, submitted.Failed())

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/contact", nil)
	require.NoError(t, formkit.Redirect("/contact", formkit.WithForm(submitted, store)).Render(w1, r1))
	assert.Equal(t, http.StatusSeeOther, w1.Code)

	// GET: redirect target restores the outcome
	restored, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	w2 := httptest.NewRecorder()
	r2 := carry(w1, httptest.NewRequest(http.MethodGet, "/contact", nil))
	found, err := formkit.Restore(ctx, w2, r2, store, restored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, restored.Failed())
	assert.Equal(t, submitted.Errors(), restored.Errors())
	assert.Equal(t, "nope", restored.Old("email"))

	// one-shot: a reload sees a pending form again
	again, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	w3 := httptest.NewRecorder()
	r3 := carry(w2, httptest.NewRequest(http.MethodGet, "/contact", nil))
	for _, c := range r2.Cookies() {
		r3.AddCookie(c)
	}
	found, err = formkit.Restore(ctx, w3, r3, store, again)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, formkit.StatusPending, again.Status())
}

func TestRedirect_PendingFormNotFlashed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFlashStore(t)

	pending, err := formkit.Make(contactDefinition())
	require.NoError(t, err)

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodPost, "/contact", nil)
	require.NoError(t, formkit.Redirect("/contact", formkit.WithForm(pending, store)).Render(w1, r1))

	restored, err := formkit.Make(contactDefinition())
	require.NoError(t, err)
	w2 := httptest.NewRecorder()
	r2 := carry(w1, httptest.NewRequest(http.MethodGet, "/contact", nil))
	found, err := formkit.Restore(ctx, w2, r2, store, restored)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedirectBack(t *testing.T) {
	t.Parallel()

	t.Run("same-host referrer wins", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://app.test/contact", nil)
		r.Header.Set("Referer", "http://app.test/about")
		require.NoError(t, formkit.RedirectBack("/").Render(w, r))
		assert.Equal(t, "http://app.test/about", w.Header().Get("Location"))
	})

	t.Run("foreign referrer falls back", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "http://app.test/contact", nil)
		r.Header.Set("Referer", "http://evil.test/phish")
		require.NoError(t, formkit.RedirectBack("/").Render(w, r))
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, formkit.IsDataStar(plain))

	sse := httptest.NewRequest(http.MethodGet, "/", nil)
	sse.Header.Set("Accept", "text/event-stream")
	assert.True(t, formkit.IsDataStar(sse))

	signal := httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)
	assert.True(t, formkit.IsDataStar(signal))
}
