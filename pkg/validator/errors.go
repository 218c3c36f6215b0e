package validator

import "errors"

// Common validation errors usable as sentinels across the application.
var (
	// ErrValidationFailed is returned when validation fails without a more
	// specific error.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFieldRequired is returned when a required field is empty.
	ErrFieldRequired = errors.New("field is required")

	// ErrInvalidLength is returned when a value has an invalid length.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidValue is returned when a value is not acceptable.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidFormat is returned when a value has an invalid format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange is returned when a numeric value is outside the allowed
	// range.
	ErrOutOfRange = errors.New("value out of range")
)
