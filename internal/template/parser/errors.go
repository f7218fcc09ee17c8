package parser

import "fmt"

// ParseErrorType represents the type of parsing error.
type ParseErrorType int

const (
	// UnknownStatement indicates a control tag that is not if, else, for or end.
	UnknownStatement ParseErrorType = iota
	// MissingVariable indicates a reference to a variable that doesn't exist.
	MissingVariable
	// TypeMismatch indicates a value of the wrong type (e.g., looping over a string).
	TypeMismatch
	// UnclosedBlock indicates an if or for block without a matching end.
	UnclosedBlock
	// UnclosedTag indicates a <% without a closing %>.
	UnclosedTag
	// UnknownHelper indicates a call to a helper that is not registered.
	UnknownHelper
	// InvalidSyntax indicates a malformed tag or expression.
	InvalidSyntax
)

// String returns a short name for the error type.
func (t ParseErrorType) String() string {
	switch t {
	case UnknownStatement:
		return "unknown statement"
	case MissingVariable:
		return "missing variable"
	case TypeMismatch:
		return "type mismatch"
	case UnclosedBlock:
		return "unclosed block"
	case UnclosedTag:
		return "unclosed tag"
	case UnknownHelper:
		return "unknown helper"
	case InvalidSyntax:
		return "invalid syntax"
	default:
		return "unknown"
	}
}

// ParseError represents a template parsing error with detailed context.
type ParseError struct {
	// Type is the error type.
	Type ParseErrorType
	// Message is the error message.
	Message string
	// File is the template key where the error occurred (set by callers).
	File string
	// Line is the line number where the error occurred (1-indexed, 0 if unknown).
	Line int
	// Tag is the problematic tag text.
	Tag string
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s (tag: %s)", e.File, e.Line, e.Message, e.Tag)
	}
	if e.Line > 0 && e.Tag != "" {
		return fmt.Sprintf("line %d: %s (tag: %s)", e.Line, e.Message, e.Tag)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s (tag: %s)", e.File, e.Message, e.Tag)
	}
	if e.Tag != "" {
		return fmt.Sprintf("%s (tag: %s)", e.Message, e.Tag)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newParseError creates a new ParseError with the given type and message.
func newParseError(typ ParseErrorType, message string) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: message,
	}
}

// newParseErrorAt creates a ParseError pointing at a tag.
func newParseErrorAt(typ ParseErrorType, message string, tag Tag) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: message,
		Line:    tag.Line,
		Tag:     tag.RawText,
	}
}

// atTag attaches tag position to a ParseError produced without one.
func atTag(err error, tag Tag) error {
	if pe, ok := err.(*ParseError); ok && pe.Tag == "" {
		pe.Line = tag.Line
		pe.Tag = tag.RawText
	}
	return err
}
