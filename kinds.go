package formkit

import (
	"strconv"
	"strings"
	"sync"
)

// Kind identifies a field variant. The built-in set is closed; new kinds
// are added explicitly through RegisterKind.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindHidden   Kind = "hidden"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
	KindNumber   Kind = "number"
)

// KindSpec describes how a field kind maps to markup and typed data.
type KindSpec struct {
	// InputType is the HTML input type attribute. Empty for kinds rendered
	// as non-input elements (textarea, select).
	InputType string

	// Resolve converts a validated raw value into the typed value exposed
	// by Form.Data. Nil means the raw string passes through.
	Resolve func(raw string) any
}

type kindRegistry struct {
	mu    sync.RWMutex
	specs map[Kind]KindSpec
}

var kinds = &kindRegistry{specs: make(map[Kind]KindSpec)}

// RegisterKind adds a custom field kind. Registering an existing kind
// returns ErrKindRegistered; built-in kinds cannot be replaced.
func RegisterKind(kind Kind, spec KindSpec) error {
	kinds.mu.Lock()
	defer kinds.mu.Unlock()

	if _, exists := kinds.specs[kind]; exists {
		return ErrKindRegistered
	}
	kinds.specs[kind] = spec
	return nil
}

// kindSpec returns the spec for a kind, falling back to text behavior for
// kinds that were never registered.
func kindSpec(kind Kind) KindSpec {
	kinds.mu.RLock()
	defer kinds.mu.RUnlock()

	if spec, ok := kinds.specs[kind]; ok {
		return spec
	}
	return KindSpec{InputType: "text"}
}

func resolveCheckbox(raw string) any {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

func resolveNumber(raw string) any {
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func init() {
	kinds.specs[KindText] = KindSpec{InputType: "text"}
	kinds.specs[KindEmail] = KindSpec{InputType: "email"}
	kinds.specs[KindPassword] = KindSpec{InputType: "password"}
	kinds.specs[KindTextarea] = KindSpec{}
	kinds.specs[KindHidden] = KindSpec{InputType: "hidden"}
	kinds.specs[KindCheckbox] = KindSpec{InputType: "checkbox", Resolve: resolveCheckbox}
	kinds.specs[KindSelect] = KindSpec{}
	kinds.specs[KindNumber] = KindSpec{InputType: "number", Resolve: resolveNumber}
}
