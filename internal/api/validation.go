package api

import (
	"errors"
)

// ValidationError is a client-side rejection. It is raised before any
// network call and rendered as a warning, not a backend failure.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a client-side validation failure
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
