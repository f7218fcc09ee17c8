package catalog

import "fmt"

// CatalogError reports an invalid catalog definition.
type CatalogError struct {
	// Key is the template key of the offending entry (if any).
	Key string
	// Message describes the problem.
	Message string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("entry %q: %s", e.Key, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("template catalog: %s: %v", msg, e.Cause)
	}
	return "template catalog: " + msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CatalogError) Unwrap() error {
	return e.Cause
}

func newCatalogError(key, message string, cause error) *CatalogError {
	return &CatalogError{
		Key:     key,
		Message: message,
		Cause:   cause,
	}
}
