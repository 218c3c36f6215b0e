package formkit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formkit/pkg/flash"
)

// Snapshot is the flash payload for one form outcome. It is what every
// flash.Store serializes: a plain struct with the form identity and its
// terminal state.
type Snapshot struct {
	ID        string    `json:"id"`
	Form      string    `json:"form"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Response renders itself onto an HTTP exchange. Redirect values implement
// it so handlers can return them directly.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// redirectResponse redirects and optionally flashes form state first.
type redirectResponse struct {
	url   string
	code  int
	form  *Form
	store flash.Store
}

// RedirectOption configures a redirect response.
type RedirectOption func(*redirectResponse)

// WithForm flashes the form's state through the store before redirecting,
// so the redirect target can Restore it. Pending forms are skipped; there
// is nothing to show yet.
func WithForm(form *Form, store flash.Store) RedirectOption {
	return func(r *redirectResponse) {
		r.form = form
		r.store = store
	}
}

// Redirect builds a 303 See Other response, the right code after a form
// POST. DataStar requests get an SSE-driven client-side redirect instead of
// a Location header.
func Redirect(url string, opts ...RedirectOption) Response {
	return RedirectWithCode(url, http.StatusSeeOther, opts...)
}

// RedirectWithCode builds a redirect response with an explicit status code.
func RedirectWithCode(url string, code int, opts ...RedirectOption) Response {
	r := &redirectResponse{url: url, code: code}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render flashes the attached form state, if any, then redirects.
func (resp *redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if resp.form != nil && resp.store != nil && resp.form.Status().Terminal() {
		snap := Snapshot{
			ID:        uuid.NewString(),
			Form:      resp.form.Name(),
			State:     resp.form.State(),
			CreatedAt: time.Now().UTC(),
		}
		if err := resp.store.Put(r.Context(), w, r, resp.form.Name(), snap); err != nil {
			return fmt.Errorf("formkit: flash form state: %w", err)
		}
	}

	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		return sse.Redirect(resp.url)
	}
	http.Redirect(w, r, resp.url, resp.code)
	return nil
}

// RedirectBack redirects to the same-host referrer, or the fallback when
// the referrer is missing or points elsewhere. Useful when one form is
// posted from several pages.
func RedirectBack(fallback string, opts ...RedirectOption) Response {
	return &backResponse{
		redirectResponse: redirectResponse{url: fallback, code: http.StatusSeeOther},
		opts:             opts,
	}
}

type backResponse struct {
	redirectResponse
	opts []RedirectOption
}

func (resp *backResponse) Render(w http.ResponseWriter, r *http.Request) error {
	target := resp.url
	if referer := r.Header.Get("Referer"); referer != "" && sameHost(referer, r) {
		target = referer
	}
	inner := &redirectResponse{url: target, code: resp.code}
	for _, opt := range resp.opts {
		opt(inner)
	}
	return inner.Render(w, r)
}

func sameHost(raw string, r *http.Request) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return parsed.Host == "" || parsed.Host == r.Host
}

// IsDataStar reports whether the request comes from the DataStar client:
// it accepts SSE, carries the signals query parameter, or posts the
// DataStar content type.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	if r.URL.Query().Has("datastar") {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}

// Restore takes the one-shot snapshot for the form from the store and
// hydrates the form with it. When no snapshot exists the form stays
// pending and Restore reports false; storage failures other than a missing
// snapshot are returned as errors.
func Restore(ctx context.Context, w http.ResponseWriter, r *http.Request, store flash.Store, form *Form) (bool, error) {
	var snap Snapshot
	err := store.Take(ctx, w, r, form.Name(), &snap)
	switch {
	case errors.Is(err, flash.ErrNoSnapshot):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("formkit: restore form state: %w", err)
	}
	if snap.Form != form.Name() {
		return false, nil
	}
	form.Hydrate(snap.State)
	return form.Status().Terminal(), nil
}
