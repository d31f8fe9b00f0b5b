package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error. Not-found is a server
// rejection with status 404; it keeps its own type so callers can tell it apart.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Status:  http.StatusNotFound,
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewNetworkError creates a transport-level failure
func NewNetworkError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: fmt.Sprintf("request failed: %s", operation),
		Code:    "NETWORK_FAILURE",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewServerRejectionError creates an error for a non-2xx response
func NewServerRejectionError(operation string, status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &AppError{
		Type:    ErrorTypeServerRejection,
		Message: fmt.Sprintf("%s rejected: %s", operation, message),
		Code:    "SERVER_REJECTION",
		Status:  status,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewSessionExpiredError creates an error for a 401-class response or an
// expired local session
func NewSessionExpiredError(operation string, status int) *AppError {
	return &AppError{
		Type:    ErrorTypeSessionExpired,
		Message: fmt.Sprintf("session expired during %s", operation),
		Code:    "SESSION_EXPIRED",
		Status:  status,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewUnauthenticatedError creates an error for commands run without a session
func NewUnauthenticatedError() *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: "not signed in",
		Code:    "UNAUTHENTICATED",
		Context: make(map[string]interface{}),
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewStorageError creates an error for the local session store
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: fmt.Sprintf("session storage failed: %s", operation),
		Code:    "STORAGE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or zero
func StatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status
	}
	return 0
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeServerRejection:
			return appErr.Message
		case ErrorTypeNetwork:
			return "Could not reach the task service. Please try again."
		case ErrorTypeSessionExpired:
			return "Your session has expired. Please sign in again."
		case ErrorTypeUnauthenticated:
			return "You are not signed in. Run 'tm login' first."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		case ErrorTypeStorage:
			return "The local session store could not be read or written."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeUnauthenticated:
			return false // user errors
		default:
			return true
		}
	}
	return true
}
