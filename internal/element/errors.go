package element

import "fmt"

// ValidationError is a user-correctable problem with an answer.
// The prompt layer shows Message and asks again; it never aborts the run.
type ValidationError struct {
	// Field is the answer that failed validation.
	Field string
	// Value is the rejected input.
	Value string
	// Message is shown to the user.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// InvariantError reports a programming error in the derivation pipeline,
// such as a property model missing a required field. It is never shown to
// the user as a validation message.
type InvariantError struct {
	// Field is the model field that violated the invariant.
	Field string
	// Message describes the violation.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal error: property model %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("internal error: property model %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *InvariantError) Unwrap() error {
	return e.Cause
}

func newInvariantError(field, message string, cause error) *InvariantError {
	return &InvariantError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
