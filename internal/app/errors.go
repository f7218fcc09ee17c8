package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates invalid answers or options.
	ValidationFailed AppErrorType = iota
	// ConfigurationFailed indicates a configuration, catalog or template source problem.
	ConfigurationFailed
	// AnswersLoadFailed indicates an answers file could not be loaded.
	AnswersLoadFailed
	// ModelBuildFailed indicates the property model could not be built.
	ModelBuildFailed
	// PlanFailed indicates the materialization plan could not be built.
	PlanFailed
	// TemplateRenderFailed indicates a template cannot be rendered against the model.
	TemplateRenderFailed
	// GenerationFailed indicates writing the output failed.
	GenerationFailed
	// PostGenerateFailed indicates an install or build command failed.
	PostGenerateFailed
)

// String returns the string representation of the error type.
func (t AppErrorType) String() string {
	switch t {
	case ValidationFailed:
		return "ValidationError"
	case ConfigurationFailed:
		return "ConfigurationError"
	case AnswersLoadFailed:
		return "AnswersLoadError"
	case ModelBuildFailed:
		return "ModelBuildError"
	case PlanFailed:
		return "PlanError"
	case TemplateRenderFailed:
		return "TemplateRenderError"
	case GenerationFailed:
		return "GenerationError"
	case PostGenerateFailed:
		return "PostGenerateError"
	default:
		return "Unknown"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string, cause error) *AppError {
	return NewAppError(ConfigurationFailed, message, cause)
}

// NewAnswersLoadError creates an answers load error.
func NewAnswersLoadError(message string, cause error) *AppError {
	return NewAppError(AnswersLoadFailed, message, cause)
}

// NewTemplateRenderError creates a template render error.
func NewTemplateRenderError(message string, cause error) *AppError {
	return NewAppError(TemplateRenderFailed, message, cause)
}

// NewGenerationError creates a generation error.
func NewGenerationError(message string, cause error) *AppError {
	return NewAppError(GenerationFailed, message, cause)
}
