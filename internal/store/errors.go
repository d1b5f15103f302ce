package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an item does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or invalid form field. Nothing is
// written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
