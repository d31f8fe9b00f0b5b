package cli

import (
	stderrors "errors"
	"fmt"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct {
	verbose bool
}

// NewErrorHandler creates a new error handler. Verbose handlers append the
// error code and underlying cause.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{verbose: verbose}
}

// Handle provides user-friendly error messages for validation and other errors
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		logging.Debug("command failed", "operation", operation, "code", errors.GetErrorCode(err), "error", err)
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	return stderrors.New(eh.message(err))
}

func (eh *ErrorHandler) message(err error) string {
	var ve *validation.ValidationError
	if stderrors.As(err, &ve) {
		return ve.GetUserFriendlyMessage()
	}

	var ce *config.ConfigError
	if stderrors.As(err, &ce) {
		return ce.Error()
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		return err.Error()
	}
	msg := errors.GetUserMessage(err)
	if eh.verbose {
		msg = fmt.Sprintf("%s [%s]", msg, appErr.Code)
		if appErr.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, appErr.Cause)
		}
	}
	return msg
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsSessionError reports whether signing in again would help.
func (eh *ErrorHandler) IsSessionError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeSessionExpired) ||
		errors.IsErrorType(err, errors.ErrorTypeUnauthenticated)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
