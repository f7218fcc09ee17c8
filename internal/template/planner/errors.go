package planner

import "fmt"

// PlanErrorType categorizes planner errors.
type PlanErrorType int

const (
	// PlanInvalidDestination indicates a destination that is not a safe relative path.
	PlanInvalidDestination PlanErrorType = iota
	// PlanConflict indicates two planned actions for one exclusive group or destination.
	PlanConflict
	// PlanTemplateRender indicates a planned template that cannot render against the model.
	PlanTemplateRender
	// PlanSourceFailed indicates a planned template could not be read.
	PlanSourceFailed
)

// String returns the string representation of the error type.
func (t PlanErrorType) String() string {
	switch t {
	case PlanInvalidDestination:
		return "InvalidDestination"
	case PlanConflict:
		return "Conflict"
	case PlanTemplateRender:
		return "TemplateRender"
	case PlanSourceFailed:
		return "SourceFailed"
	default:
		return "Unknown"
	}
}

// PlanError represents planner errors. Errors of type PlanTemplateRender
// are template render errors detected before anything is written.
type PlanError struct {
	// Type categorizes the error.
	Type PlanErrorType
	// Message is the error message.
	Message string
	// Key is the template key related to the error (if applicable).
	Key string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Key != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (template: %s): %v", e.Message, e.Key, e.Cause)
		}
		return fmt.Sprintf("%s (template: %s)", e.Message, e.Key)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *PlanError) Unwrap() error {
	return e.Cause
}

// newPlanError creates a new PlanError.
func newPlanError(typ PlanErrorType, message, key string, cause error) *PlanError {
	return &PlanError{
		Type:    typ,
		Message: message,
		Key:     key,
		Cause:   cause,
	}
}
