package formkit

// Status is the lifecycle phase of a form. Forms start pending and move to
// exactly one terminal state when validated; there is no way back.
type Status string

const (
	// StatusPending means the form was declared but no submission has been
	// validated against it yet.
	StatusPending Status = "pending"

	// StatusSuccessful means validation ran and every rule passed.
	StatusSuccessful Status = "successful"

	// StatusFailed means validation ran and at least one rule failed.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status is one of the two end states.
func (s Status) Terminal() bool {
	return s == StatusSuccessful || s == StatusFailed
}

// State is the serializable outcome of a validation pass. It is what travels
// through a flash store between the submission request and the redirect
// target, and what Hydrate replays onto a fresh form.
type State struct {
	Status Status              `json:"status"`
	Errors map[string][]string `json:"errors,omitempty"`
	Old    map[string]string   `json:"old,omitempty"`
}
