package domain

import "errors"

// Rejection codes for validation failures. These are non-fatal to a
// planning session: no partial mutation happens on rejection.
const (
	CodeEmptyStaff       = "empty_staff"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeDuplicatePatient = "duplicate_patient"
	CodeEditForbidden    = "edit_forbidden"
	CodeBadIndex         = "bad_index"
)

// ValidationError is a typed rejection with a machine code and a
// human-readable reason. External-collaborator failures are plain
// wrapped errors, never ValidationErrors.
type ValidationError struct {
	Code   string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
