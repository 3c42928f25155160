package errors

import (
	"fmt"
)

// AppError represents a structured application error, surfaced at the
// service boundary (spec §7).
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, carrying the original
// error's code forward if it is already an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternalError, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetCode returns the error code if err is an AppError, otherwise "UNKNOWN".
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Error codes, spec §7's taxonomy.
const (
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeNotFound         = "NOT_FOUND"
	CodeStorage          = "STORAGE_ERROR"
	CodeExternalService  = "EXTERNAL_SERVICE_ERROR"
	CodeConfiguration    = "CONFIGURATION_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// InsufficientData is recoverable: the caller has too few evaluations for
// a recommendation request (spec §7).
func InsufficientData(current, required int) *AppError {
	return &AppError{
		Code:    CodeInsufficientData,
		Message: fmt.Sprintf("have %d evaluations, need %d", current, required),
	}
}

// NotFound signals a missing reviewer or fragrance (spec §7).
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// Storage wraps an opaque storage-layer failure; callers propagate it
// unchanged (spec §7 "Storage").
func Storage(cause error) *AppError {
	return &AppError{Code: CodeStorage, Message: "storage operation failed", Cause: cause}
}

// ExternalService wraps a failed call to the LLM provider. The explanation
// adapter must never let this escape past itself (spec §7 "External
// service errors never propagate to the caller") — it is constructed only
// for logging, not for returning to a recommendation/profile request.
func ExternalService(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeExternalService,
		Message: fmt.Sprintf("%s request failed", service),
		Cause:   cause,
	}
}

// Configuration signals a fatal, startup-time misconfiguration (spec §7).
func Configuration(message string) *AppError {
	return New(CodeConfiguration, message)
}

// InvalidInput signals a malformed request parameter.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// Internal signals an unexpected failure with no more specific code.
func Internal(message string) *AppError {
	return New(CodeInternalError, message)
}
