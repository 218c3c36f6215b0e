package formkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Values is a read-only view over submitted request data. Validation only
// ever reads field values by name, so any source that can answer a string
// lookup works: parsed form data, a plain map, a JSON body.
type Values interface {
	// Get returns the first value for the named field, or "" when absent.
	Get(name string) string
}

// MapValues adapts a plain map, mostly for tests and programmatic input.
type MapValues map[string]string

// Get implements Values.
func (m MapValues) Get(name string) string { return m[name] }

// FormValues adapts url.Values from a parsed form or query string.
func FormValues(values url.Values) Values {
	return urlValues(values)
}

type urlValues url.Values

func (v urlValues) Get(name string) string { return url.Values(v).Get(name) }

const maxFormMemory = 10 << 20 // 10 MB

// RequestValues extracts submitted values from an HTTP request based on its
// Content-Type. It understands urlencoded forms, multipart forms and JSON
// objects with scalar values; anything else is ErrUnsupportedMediaType.
func RequestValues(r *http.Request) (Values, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected form or JSON body", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return urlValues(r.PostForm), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		return urlValues(r.PostForm), nil

	case "application/json":
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		values := make(MapValues, len(raw))
		for k, v := range raw {
			switch t := v.(type) {
			case nil:
				values[k] = ""
			case string:
				values[k] = t
			case bool:
				values[k] = fmt.Sprintf("%t", t)
			case float64:
				values[k] = trimFloat(t)
			default:
				// nested objects and arrays are not form input
				return nil, fmt.Errorf("%w: field %q is not a scalar", ErrInvalidRequest, k)
			}
		}
		return values, nil

	default:
		return nil, fmt.Errorf("%w: got %s", ErrUnsupportedMediaType, mediaType)
	}
}

// trimFloat renders a JSON number without a trailing .0 for integral values,
// so {"age": 30} validates the same as age=30 from a form.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
