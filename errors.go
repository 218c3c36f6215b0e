package formkit

import "errors"

// Configuration errors surface at construction time and are always
// programmer mistakes. Validation failures are never errors; they are
// captured into form state.
var (
	// ErrMissingFormName is returned when a definition has no name.
	// The name keys flash snapshots, so it cannot be empty.
	ErrMissingFormName = errors.New("formkit: definition name is required")

	// ErrNoFields is returned when a definition declares no fields.
	ErrNoFields = errors.New("formkit: definition has no fields")

	// ErrInvalidFieldName is returned for empty or non-identifier field names.
	ErrInvalidFieldName = errors.New("formkit: invalid field name")

	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("formkit: duplicate field name")

	// ErrAlreadyValidated is recorded when Validate or Hydrate is called on
	// a form that already reached a terminal state.
	ErrAlreadyValidated = errors.New("formkit: form already validated")

	// ErrKindRegistered is returned when registering a field kind that
	// already exists.
	ErrKindRegistered = errors.New("formkit: field kind already registered")

	// ErrInvalidSchema is returned when a YAML form schema cannot be
	// converted into a definition.
	ErrInvalidSchema = errors.New("formkit: invalid form schema")
)

// Request parsing errors, returned by RequestValues.
var (
	ErrMissingContentType   = errors.New("formkit: missing content type")
	ErrUnsupportedMediaType = errors.New("formkit: unsupported media type")
	ErrInvalidRequest       = errors.New("formkit: invalid request data")
)
