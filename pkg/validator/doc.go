// Package validator provides a declarative rule engine for validating
// user-submitted values.
//
// Rules are plain values pairing a check with the error to report when the
// check fails. Apply evaluates every rule and collects all failures, so a
// single invalid field never hides problems in other fields:
//
//	err := validator.Apply(
//		validator.RequiredString("email", email),
//		validator.ValidEmail("email", email),
//		validator.MinLenString("password", password, 8),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		for _, e := range errs {
//			fmt.Println(e.Field, e.Message)
//		}
//	}
//
// Every ValidationError carries a translation key and the values needed to
// render a localized message, so callers can translate errors without
// re-running validation:
//
//	errs.Translate(func(key string, values map[string]any) string {
//		return myTranslator.T(key, values)
//	})
package validator
