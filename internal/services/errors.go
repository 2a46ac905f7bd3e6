package services

import "errors"

// ErrUnauthorized is returned when a mutation arrives without a caller
// identity. The gateway normally guarantees one; this guards direct calls.
var ErrUnauthorized = errors.New("caller identity required")

// ValidationError marks request-level failures so handlers can map them to
// 400 instead of 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
