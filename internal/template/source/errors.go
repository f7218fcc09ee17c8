package source

import "fmt"

// SourceErrorType represents the type of source error.
type SourceErrorType int

const (
	// SourceNotFound indicates the template directory does not exist.
	SourceNotFound SourceErrorType = iota
	// SourceInvalid indicates the template location is not a usable directory.
	SourceInvalid
	// SourceKeyNotFound indicates a template key has no file in the source.
	SourceKeyNotFound
	// SourceInvalidKey indicates a template key that is not a clean relative path.
	SourceInvalidKey
	// SourceReadFailed indicates a template file could not be read.
	SourceReadFailed
)

// String returns the string representation of the error type.
func (t SourceErrorType) String() string {
	switch t {
	case SourceNotFound:
		return "NotFound"
	case SourceInvalid:
		return "Invalid"
	case SourceKeyNotFound:
		return "KeyNotFound"
	case SourceInvalidKey:
		return "InvalidKey"
	case SourceReadFailed:
		return "ReadFailed"
	default:
		return "Unknown"
	}
}

// SourceError represents a template source error.
type SourceError struct {
	// Type is the error type classification.
	Type SourceErrorType
	// Message is the human-readable error message.
	Message string
	// Source is the source name (e.g., "builtin", "local").
	Source string
	// Key is the template key or directory that caused the error.
	Key string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s source error [%s] for '%s': %s (caused by: %v)",
			e.Source, e.Type.String(), e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s source error [%s] for '%s': %s",
		e.Source, e.Type.String(), e.Key, e.Message)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSourceError creates a new SourceError.
func NewSourceError(typ SourceErrorType, source, key, message string, cause error) *SourceError {
	return &SourceError{
		Type:    typ,
		Message: message,
		Source:  source,
		Key:     key,
		Cause:   cause,
	}
}

// NewNotFoundError creates a directory not found error.
func NewNotFoundError(source, dir string, cause error) *SourceError {
	return NewSourceError(SourceNotFound, source, dir, "template directory not found", cause)
}

// NewKeyNotFoundError creates a missing template error.
func NewKeyNotFoundError(source, key string, cause error) *SourceError {
	return NewSourceError(SourceKeyNotFound, source, key, "template not found", cause)
}

// NewInvalidKeyError creates an invalid key error.
func NewInvalidKeyError(source, key string, cause error) *SourceError {
	return NewSourceError(SourceInvalidKey, source, key, "invalid template key", cause)
}

// NewReadError creates a read failed error.
func NewReadError(source, key string, cause error) *SourceError {
	return NewSourceError(SourceReadFailed, source, key, "failed to read template", cause)
}
