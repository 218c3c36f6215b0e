package formkit

import (
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// Renderer produces markup for one field. Custom renderers registered per
// kind override the built-in generic markup.
type Renderer func(field Field) templ.Component

var renderers = struct {
	sync.RWMutex
	byKind map[Kind]Renderer
}{byKind: make(map[Kind]Renderer)}

// RegisterRenderer overrides the markup for a field kind. Later
// registrations replace earlier ones.
func RegisterRenderer(kind Kind, r Renderer) {
	renderers.Lock()
	defer renderers.Unlock()
	renderers.byKind[kind] = r
}

// Component renders a single field: label, input element matched to the
// field kind, error messages and hint. Values and attributes are
// HTML-escaped. A renderer registered for the kind takes precedence.
func Component(field Field) templ.Component {
	renderers.RLock()
	custom, ok := renderers.byKind[field.Kind()]
	renderers.RUnlock()
	if ok {
		return custom(field)
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeField(&b, field)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// FormComponent renders every field of the form in declaration order,
// wrapped in a div carrying the form name. It does not emit the <form>
// element itself; action, method and CSRF stay with the caller.
func FormComponent(form *Form) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div class="form-fields" data-form=%q>`, html.EscapeString(form.Name()))
		if msg := form.Error(""); msg != "" {
			fmt.Fprintf(&b, `<p class="form-error">%s</p>`, html.EscapeString(msg))
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		for _, field := range form.Fields() {
			if err := Component(field).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func writeField(b *strings.Builder, field Field) {
	name := html.EscapeString(field.Name())

	fmt.Fprintf(b, `<div class="form-field form-field-%s">`, html.EscapeString(string(field.Kind())))
	if field.Kind() != KindHidden && field.Label() != "" {
		fmt.Fprintf(b, `<label for="%s">%s</label>`, name, html.EscapeString(field.Label()))
	}

	switch field.Kind() {
	case KindTextarea:
		fmt.Fprintf(b, `<textarea id="%s" name="%s"%s>%s</textarea>`,
			name, name, commonAttrs(field), html.EscapeString(field.ValueString()))
	case KindSelect:
		fmt.Fprintf(b, `<select id="%s" name="%s"%s>`, name, name, commonAttrs(field))
		current := field.ValueString()
		for _, c := range field.Choices() {
			selected := ""
			if c.Value == current {
				selected = " selected"
			}
			fmt.Fprintf(b, `<option value="%s"%s>%s</option>`,
				html.EscapeString(c.Value), selected, html.EscapeString(c.Label))
		}
		b.WriteString(`</select>`)
	case KindCheckbox:
		checked := ""
		switch v := field.Value().(type) {
		case bool:
			if v {
				checked = " checked"
			}
		case string:
			if on, ok := resolveCheckbox(v).(bool); ok && on {
				checked = " checked"
			}
		}
		fmt.Fprintf(b, `<input type="checkbox" id="%s" name="%s" value="1"%s%s>`,
			name, name, checked, commonAttrs(field))
	default:
		inputType := kindSpec(field.Kind()).InputType
		if inputType == "" {
			inputType = "text"
		}
		fmt.Fprintf(b, `<input type="%s" id="%s" name="%s" value="%s"%s>`,
			html.EscapeString(inputType), name, name,
			html.EscapeString(field.ValueString()), commonAttrs(field))
	}

	for _, msg := range field.Errors() {
		fmt.Fprintf(b, `<p class="field-error">%s</p>`, html.EscapeString(msg))
	}
	if field.Hint() != "" {
		fmt.Fprintf(b, `<p class="field-hint">%s</p>`, html.EscapeString(field.Hint()))
	}
	b.WriteString(`</div>`)
}

// commonAttrs renders placeholder, required and custom attributes in a
// deterministic order.
func commonAttrs(field Field) string {
	var b strings.Builder
	if field.Placeholder() != "" {
		fmt.Fprintf(&b, ` placeholder="%s"`, html.EscapeString(field.Placeholder()))
	}
	if field.Required() {
		b.WriteString(` required`)
	}

	attrs := field.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(k), html.EscapeString(attrs[k]))
	}
	return b.String()
}
