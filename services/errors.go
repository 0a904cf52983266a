package services

import "errors"

// ValidationError is a caller mistake (blank field, bad quantity). Front-ends
// render it as a normal rejection message, never as a server failure.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
