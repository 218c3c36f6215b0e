package formkit

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"regexp"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Hook runs around validation. BeforeValidate may short-circuit the pass by
// returning an error; AfterValidate runs cross-field checks once every
// per-field rule has been evaluated. Hooks may also record errors directly
// through Form.AddError. A returned error carrying validator.ValidationErrors
// is merged into field errors; any other error becomes the form-level message.
type Hook func(ctx context.Context, form *Form, values Values) error

// Definition declares a form: its identity, its fields and its behavior
// around validation. Definitions are plain values and safe to share; every
// Make call produces an independent form instance from it.
type Definition struct {
	// Name identifies the form. It keys flash snapshots, so it must be
	// unique among forms that share a flash store.
	Name string

	// Fields produces the field list in render order. It must be
	// deterministic and side-effect free; Make calls it exactly once.
	Fields func() []Field

	// BeforeValidate runs before any rule. Optional.
	BeforeValidate Hook

	// AfterValidate runs after per-field rules, only when they all passed.
	// Optional.
	AfterValidate Hook

	// SuccessMessage and ErrorMessage are the default outcome messages
	// returned by Success and Error when no fallback is given.
	SuccessMessage string
	ErrorMessage   string
}

// Form is a single-use validation instance: made pending, validated once,
// then queried and rendered. It is not safe for concurrent use; make one
// per request.
type Form struct {
	def    Definition
	fields []Field
	index  map[string]int

	status  Status
	data    map[string]any
	old     map[string]string
	pending map[string][]string // errors collected during a running Validate
	formMsg string              // form-level error from a hook

	err error // sticky programmer error, see Err

	log *slog.Logger
}

// Option configures a form instance at Make time.
type Option func(*Form)

// WithLogger attaches a logger for debug-level validation outcome logs.
func WithLogger(log *slog.Logger) Option {
	return func(f *Form) {
		if log != nil {
			f.log = log
		}
	}
}

var fieldNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\-.]*$`)

// Make builds a pending form from a definition. Malformed definitions fail
// fast: missing name, no fields, invalid or duplicate field names are all
// configuration errors, never deferred to validation time.
func Make(def Definition, opts ...Option) (*Form, error) {
	if def.Name == "" {
		return nil, ErrMissingFormName
	}
	if def.Fields == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, def.Name)
	}

	fields := def.Fields()
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, def.Name)
	}

	index := make(map[string]int, len(fields))
	for i, field := range fields {
		if !fieldNameRe.MatchString(field.name) {
			return nil, fmt.Errorf("%w: %q in form %s", ErrInvalidFieldName, field.name, def.Name)
		}
		if _, exists := index[field.name]; exists {
			return nil, fmt.Errorf("%w: %q in form %s", ErrDuplicateField, field.name, def.Name)
		}
		index[field.name] = i
	}

	f := &Form{
		def:    def,
		fields: fields,
		index:  index,
		status: StatusPending,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// MakeWith builds a pending form and seeds initial values, overriding field
// defaults. Unknown names are ignored so one initial map can feed several
// forms.
func MakeWith(def Definition, initial map[string]any, opts ...Option) (*Form, error) {
	f, err := Make(def, opts...)
	if err != nil {
		return nil, err
	}
	for name, value := range initial {
		if i, ok := f.index[name]; ok {
			f.fields[i].value = value
		}
	}
	return f, nil
}

// MustMake is Make that panics on configuration errors. Intended for
// package-level form variables where a bad definition should stop startup.
func MustMake(def Definition, opts ...Option) *Form {
	f, err := Make(def, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the definition name.
func (f *Form) Name() string { return f.def.Name }

// Status returns the current lifecycle phase.
func (f *Form) Status() Status { return f.status }

// Failed reports whether validation ran and found errors. Always false while
// pending.
func (f *Form) Failed() bool { return f.status == StatusFailed }

// Successful reports whether validation ran and every rule passed. Always
// false while pending.
func (f *Form) Successful() bool { return f.status == StatusSuccessful }

// Err returns the sticky programmer error recorded on misuse, such as
// validating an already-terminal form. It is never set by user input.
func (f *Form) Err() error { return f.err }

// Validate evaluates every field's rules against the submitted values and
// moves the form to a terminal state. It returns the form itself so the
// outcome reads fluently:
//
//	if form.Validate(ctx, values).Failed() { ... }
//
// Validation failures are state, not errors. Calling Validate on a form that
// already reached a terminal state leaves it unchanged and records
// ErrAlreadyValidated, observable via Err.
func (f *Form) Validate(ctx context.Context, values Values) *Form {
	if f.status.Terminal() {
		f.err = ErrAlreadyValidated
		f.log.ErrorContext(ctx, "form validated twice", "form", f.def.Name, "status", string(f.status))
		return f
	}

	f.pending = make(map[string][]string)
	f.old = make(map[string]string, len(f.fields))
	for i := range f.fields {
		f.old[f.fields[i].name] = values.Get(f.fields[i].name)
	}

	if f.def.BeforeValidate != nil {
		if err := f.def.BeforeValidate(ctx, f, values); err != nil {
			f.recordHookError(err)
			return f.finish(ctx)
		}
	}

	for i := range f.fields {
		field := &f.fields[i]
		raw := f.old[field.name]

		rules := make([]validator.Rule, 0, len(field.rules))
		for _, rule := range field.rules {
			if rule.skipEmpty && raw == "" {
				continue
			}
			rules = append(rules, rule.build(field.name, raw))
		}

		if err := validator.Apply(rules...); err != nil {
			for _, ve := range validator.ExtractValidationErrors(err) {
				f.pending[field.name] = append(f.pending[field.name], ve.Message)
			}
		}
	}

	if len(f.pending) == 0 && f.def.AfterValidate != nil {
		if err := f.def.AfterValidate(ctx, f, values); err != nil {
			f.recordHookError(err)
		}
	}

	return f.finish(ctx)
}

// ValidateRequest extracts values from the request body per its Content-Type
// and validates them. A malformed request fails the form with a single
// form-level message instead of returning an error, so handlers treat bad
// input and invalid input the same way.
func (f *Form) ValidateRequest(ctx context.Context, r *http.Request) *Form {
	values, err := RequestValues(r)
	if err != nil {
		if f.status.Terminal() {
			f.err = ErrAlreadyValidated
			return f
		}
		f.pending = make(map[string][]string)
		f.old = make(map[string]string)
		f.formMsg = "invalid request data"
		f.log.DebugContext(ctx, "request values rejected", "form", f.def.Name, "error", err)
		return f.finish(ctx)
	}
	return f.Validate(ctx, values)
}

// AddError records a validation message for a field during a running
// validation pass; hooks use it for cross-field checks. An empty name
// records a form-level message. Outside Validate it is a no-op that sets
// ErrAlreadyValidated.
func (f *Form) AddError(name, message string) {
	if f.pending == nil || f.status.Terminal() {
		f.err = ErrAlreadyValidated
		return
	}
	if name == "" {
		f.formMsg = message
		return
	}
	f.pending[name] = append(f.pending[name], message)
}

func (f *Form) recordHookError(err error) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		for _, ve := range verrs {
			f.AddError(ve.Field, ve.Message)
		}
		return
	}
	f.formMsg = err.Error()
}

// finish freezes fields with their submitted values and errors and commits
// the terminal state.
func (f *Form) finish(ctx context.Context) *Form {
	for i := range f.fields {
		field := &f.fields[i]
		field.apply(f.old[field.name], f.pending[field.name])
	}

	if len(f.pending) > 0 || f.formMsg != "" {
		f.status = StatusFailed
		f.log.DebugContext(ctx, "form validation failed",
			"form", f.def.Name, "fields_with_errors", len(f.pending))
	} else {
		f.status = StatusSuccessful
		f.data = make(map[string]any, len(f.fields))
		for i := range f.fields {
			field := &f.fields[i]
			raw := f.old[field.name]
			if resolve := kindSpec(field.kind).Resolve; resolve != nil {
				f.data[field.name] = resolve(raw)
			} else {
				f.data[field.name] = raw
			}
		}
		f.log.DebugContext(ctx, "form validation passed", "form", f.def.Name)
	}
	f.pending = nil
	return f
}

// Error returns the outcome message for a failed form: the hook-recorded
// form-level message first, then the definition's ErrorMessage, then the
// fallback. Empty unless the form failed.
func (f *Form) Error(fallback string) string {
	if f.status != StatusFailed {
		return ""
	}
	if f.formMsg != "" {
		return f.formMsg
	}
	if f.def.ErrorMessage != "" {
		return f.def.ErrorMessage
	}
	return fallback
}

// Success returns the outcome message for a successful form: the
// definition's SuccessMessage or the fallback. Empty unless successful.
func (f *Form) Success(fallback string) string {
	if f.status != StatusSuccessful {
		return ""
	}
	if f.def.SuccessMessage != "" {
		return f.def.SuccessMessage
	}
	return fallback
}

// Data returns the typed, validated values keyed by field name. It is empty
// unless the form is successful, so handlers can never consume unvalidated
// input by accident.
func (f *Form) Data() map[string]any {
	if f.status != StatusSuccessful {
		return map[string]any{}
	}
	return maps.Clone(f.data)
}

// Fields returns the fields in declaration order, carrying submitted values
// and per-field errors once validation has run.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field returns a single field by name.
func (f *Form) Field(name string) (Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[i], true
}

// Errors returns validation messages keyed by field name, preserving rule
// declaration order within each field. Empty until the form fails.
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	for i := range f.fields {
		if len(f.fields[i].errors) > 0 {
			out[f.fields[i].name] = f.fields[i].Errors()
		}
	}
	return out
}

// Old returns the raw submitted value for a field, for re-populating inputs
// after a failed validation. Empty while pending.
func (f *Form) Old(name string) string {
	if f.old == nil {
		return ""
	}
	return f.old[name]
}

// State snapshots the validation outcome into a plain serializable struct.
func (f *Form) State() State {
	s := State{Status: f.status}
	if errs := f.Errors(); len(errs) > 0 {
		s.Errors = errs
	}
	if f.formMsg != "" {
		if s.Errors == nil {
			s.Errors = make(map[string][]string)
		}
		s.Errors[""] = []string{f.formMsg}
	}
	if len(f.old) > 0 {
		s.Old = maps.Clone(f.old)
	}
	return s
}

// Hydrate replays a previously captured state onto a pending form, typically
// after a flash-store Take on the redirect target. No rules run; the form
// simply displays what the validating request recorded. Hydrating a terminal
// form records ErrAlreadyValidated and leaves it unchanged.
func (f *Form) Hydrate(state State) *Form {
	if f.status.Terminal() {
		f.err = ErrAlreadyValidated
		return f
	}
	if !state.Status.Terminal() {
		return f
	}

	f.old = maps.Clone(state.Old)
	if f.old == nil {
		f.old = make(map[string]string)
	}
	for i := range f.fields {
		field := &f.fields[i]
		var errs []string
		if state.Errors != nil {
			errs = state.Errors[field.name]
		}
		field.apply(f.old[field.name], errs)
	}
	if msgs := state.Errors[""]; len(msgs) > 0 {
		f.formMsg = msgs[0]
	}
	f.status = state.Status
	return f
}
