package formkit

import (
	"regexp"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Rule is a declarative constraint attached to a field. Rules are inert
// until validation, when each one is handed to the validator engine with the
// submitted value. Evaluation order follows declaration order.
type Rule struct {
	name      string
	skipEmpty bool
	build     func(field, value string) validator.Rule
}

// Name returns the rule's tag ("required", "email", ...). Useful for
// rendering hints such as the required attribute.
func (r Rule) Name() string {
	return r.name
}

// Required fails on empty or whitespace-only values. Declare it first:
// every other rule skips empty input so optional fields stay optional.
func Required() Rule {
	return Rule{
		name:  "required",
		build: validator.RequiredString,
	}
}

// MinLen fails when the value is shorter than n bytes.
func MinLen(n int) Rule {
	return Rule{
		name:      "min_len",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.MinLenString(field, value, n)
		},
	}
}

// MaxLen fails when the value is longer than n bytes.
func MaxLen(n int) Rule {
	return Rule{
		name:      "max_len",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.MaxLenString(field, value, n)
		},
	}
}

// ExactLen fails unless the value is exactly n bytes.
func ExactLen(n int) Rule {
	return Rule{
		name:      "exact_len",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.LenString(field, value, n)
		},
	}
}

// ValidEmail fails when the value is not a well-formed email address.
func ValidEmail() Rule {
	return Rule{
		name:      "email",
		skipEmpty: true,
		build:     validator.ValidEmail,
	}
}

// ValidURL fails when the value is not an absolute http(s) URL.
func ValidURL() Rule {
	return Rule{
		name:      "url",
		skipEmpty: true,
		build:     validator.ValidURL,
	}
}

// Pattern fails when the value does not match re.
func Pattern(re *regexp.Regexp) Rule {
	return Rule{
		name:      "pattern",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.Matches(field, value, re)
		},
	}
}

// Numeric fails when the value does not parse as a decimal number.
func Numeric() Rule {
	return Rule{
		name:      "numeric",
		skipEmpty: true,
		build:     validator.NumericString,
	}
}

// OneOf fails when the value is not in the allowed list.
func OneOf(allowed ...string) Rule {
	return Rule{
		name:      "in_list",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.InList(field, value, allowed)
		},
	}
}

// Custom wraps an arbitrary predicate. The message is reported verbatim
// when fn returns false.
func Custom(message string, fn func(value string) bool) Rule {
	return Rule{
		name:      "custom",
		skipEmpty: true,
		build: func(field, value string) validator.Rule {
			return validator.Rule{
				Check: func() bool { return fn(value) },
				Error: validator.ValidationError{
					Field:          field,
					Message:        message,
					TranslationKey: "validation.custom",
					TranslationValues: map[string]any{
						"field": field,
					},
				},
			}
		},
	}
}
