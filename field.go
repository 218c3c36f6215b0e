package formkit

import (
	"fmt"
	"maps"
	"slices"
)

// Choice is a single option of a select field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field is a single input definition: name, label, kind, validation rules
// and render hints. Fields are configured at declaration time and become
// read-only once their form has been validated.
type Field struct {
	name        string
	label       string
	kind        Kind
	value       any
	placeholder string
	hint        string
	attrs       map[string]string
	choices     []Choice
	rules       []Rule
	errors      []string
}

// FieldOption configures a field at declaration time.
type FieldOption func(*Field)

// WithRules appends validation rules in declaration order.
func WithRules(rules ...Rule) FieldOption {
	return func(f *Field) {
		f.rules = append(f.rules, rules...)
	}
}

// WithDefault sets the initial value shown before any submission.
func WithDefault(value any) FieldOption {
	return func(f *Field) {
		f.value = value
	}
}

// WithPlaceholder sets the placeholder render hint.
func WithPlaceholder(text string) FieldOption {
	return func(f *Field) {
		f.placeholder = text
	}
}

// WithHint sets help text displayed under the input.
func WithHint(text string) FieldOption {
	return func(f *Field) {
		f.hint = text
	}
}

// WithAttr attaches an arbitrary render attribute (e.g. autocomplete).
func WithAttr(key, value string) FieldOption {
	return func(f *Field) {
		if f.attrs == nil {
			f.attrs = make(map[string]string)
		}
		f.attrs[key] = value
	}
}

// NewField constructs a field of an explicit kind. Most callers use the
// kind-specific constructors below instead.
func NewField(name, label string, kind Kind, opts ...FieldOption) Field {
	f := Field{
		name:  name,
		label: label,
		kind:  kind,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Text declares a single-line text field.
func Text(name, label string, opts ...FieldOption) Field {
	return NewField(name, label, KindText, opts...)
}

// Email declares an email field. A format rule is always appended, so a
// non-empty submission must be a valid address.
func Email(name, label string, opts ...FieldOption) Field {
	f := NewField(name, label, KindEmail, opts...)
	f.rules = append(f.rules, ValidEmail())
	return f
}

// Password declares a password field.
func Password(name, label string, opts ...FieldOption) Field {
	return NewField(name, label, KindPassword, opts...)
}

// Textarea declares a multi-line text field.
func Textarea(name, label string, opts ...FieldOption) Field {
	return NewField(name, label, KindTextarea, opts...)
}

// Hidden declares a hidden field.
func Hidden(name, label string, opts ...FieldOption) Field {
	return NewField(name, label, KindHidden, opts...)
}

// Checkbox declares a checkbox. Its resolved value is a bool.
func Checkbox(name, label string, opts ...FieldOption) Field {
	return NewField(name, label, KindCheckbox, opts...)
}

// Number declares a numeric field. A numeric-format rule is always
// appended; the resolved value is int64 or float64.
func Number(name, label string, opts ...FieldOption) Field {
	f := NewField(name, label, KindNumber, opts...)
	f.rules = append(f.rules, Numeric())
	return f
}

// Select declares a select field. A membership rule over the choice values
// is always appended, so a non-empty submission must be a listed choice.
func Select(name, label string, choices []Choice, opts ...FieldOption) Field {
	f := NewField(name, label, KindSelect, opts...)
	f.choices = slices.Clone(choices)

	allowed := make([]string, 0, len(choices))
	for _, c := range choices {
		allowed = append(allowed, c.Value)
	}
	f.rules = append(f.rules, OneOf(allowed...))
	return f
}

// Name returns the field's unique name within its form.
func (f Field) Name() string { return f.name }

// Label returns the human-readable label.
func (f Field) Label() string { return f.label }

// Kind returns the field variant.
func (f Field) Kind() Kind { return f.kind }

// Value returns the current value: the default before submission, the raw
// submitted value after.
func (f Field) Value() any { return f.value }

// ValueString renders the current value for markup.
func (f Field) ValueString() string {
	if f.value == nil {
		return ""
	}
	if s, ok := f.value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", f.value)
}

// Placeholder returns the placeholder render hint.
func (f Field) Placeholder() string { return f.placeholder }

// Hint returns the help text render hint.
func (f Field) Hint() string { return f.hint }

// Attrs returns a copy of the arbitrary render attributes.
func (f Field) Attrs() map[string]string {
	if f.attrs == nil {
		return nil
	}
	return maps.Clone(f.attrs)
}

// Choices returns the select options.
func (f Field) Choices() []Choice { return slices.Clone(f.choices) }

// Rules returns the declared rules in order.
func (f Field) Rules() []Rule { return slices.Clone(f.rules) }

// Required reports whether a required rule is declared.
func (f Field) Required() bool {
	return slices.ContainsFunc(f.rules, func(r Rule) bool {
		return r.name == "required"
	})
}

// Errors returns the validation messages recorded for this field, in rule
// declaration order.
func (f Field) Errors() []string { return slices.Clone(f.errors) }

// HasErrors reports whether validation recorded any message.
func (f Field) HasErrors() bool { return len(f.errors) > 0 }

// apply records the submitted value and error messages after validation.
func (f *Field) apply(raw string, errs []string) {
	f.value = raw
	f.errors = errs
}
