package validators

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// FieldError reports a single failed client-side check. It is surfaced
// inline and no request is sent.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// RequiredID rejects a zero path identifier.
func RequiredID(name string, id uint) error {
	return Var(name, id, "required")
}

// Date expects YYYY-MM-DD.
func Date(name, value string) error {
	return Var(name, value, "notblank,date")
}

// Clock expects HH:MM or HH:MM:SS.
func Clock(name, value string) error {
	return Var(name, value, "notblank,clock")
}
