package serde

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a wire primitive cannot be mapped back
// to a valid instance of the target type: an unknown enum discriminant,
// unrecognized flag bits, an unparseable string, an out-of-range timestamp.
type ValidationError struct {
	// Type is the name of the target type.
	Type string

	// Value is the offending raw value, as received from the wire.
	Value any

	// Reason is a human-readable description of the failure.
	// It embeds both the raw value and the target type name.
	Reason string

	// Err is the underlying cause, if any (e.g. a parser error).
	Err error
}

// Invalid returns a new ValidationError for the given type name and raw value.
func Invalid(typ string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Type:   typ,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
		Err:    nil,
	}
}

// Wrap sets the underlying cause of the ValidationError.
func (e *ValidationError) Wrap(err error) *ValidationError {
	e.Err = err
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "serde: " + e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether any error in err's chain
// is a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// TypeName returns the Go name of the type T, as used in error messages.
func TypeName[T any]() string {
	var zeroValue T
	return fmt.Sprintf("%T", zeroValue)
}
