package cli

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-manager/internal/config"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	ve := validation.NewValidationError()
	ve.AddRequiredError(validation.FieldTitle)

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "create task",
			err:       ve,
			expected:  "failed to create task: title is required",
		},
		{
			name:      "Wrapped validation error",
			operation: "create task",
			err:       apperrors.NewValidationError("invalid task", ve),
			expected:  "failed to create task: title is required",
		},
		{
			name:      "Not found error",
			operation: "get task",
			err:       apperrors.NewNotFoundError("task", "123"),
			expected:  "failed to get task: task not found: 123",
		},
		{
			name:      "Session expired",
			operation: "list tasks",
			err:       apperrors.NewSessionExpiredError("list tasks", http.StatusUnauthorized),
			expected:  "failed to list tasks: Your session has expired. Please sign in again.",
		},
		{
			name:      "Network error",
			operation: "list tasks",
			err:       apperrors.NewNetworkError("list tasks", errors.New("connection refused")),
			expected:  "failed to list tasks: Could not reach the task service. Please try again.",
		},
		{
			name:      "Config error",
			operation: "list tasks",
			err:       &config.ConfigError{Field: "api.base_url", Message: "must be set"},
			expected:  "failed to list tasks: api.base_url: must be set",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	eh := NewErrorHandler(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleNil(t *testing.T) {
	eh := NewErrorHandler(false)
	assert.NoError(t, eh.Handle("anything", nil))
	assert.NoError(t, eh.HandleSimple(nil))
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler(false)

	assert.EqualError(t, eh.HandleSimple(apperrors.NewUnauthenticatedError()), "You are not signed in. Run 'tm login' first.")
	assert.EqualError(t, eh.HandleSimple(errors.New("plain")), "plain")
}

func TestErrorHandler_Verbose(t *testing.T) {
	eh := NewErrorHandler(true)
	cause := errors.New("dial tcp: connection refused")

	err := eh.Handle("list tasks", apperrors.NewNetworkError("list tasks", cause))

	assert.EqualError(t, err, fmt.Sprintf("failed to list tasks: Could not reach the task service. Please try again. [NETWORK_FAILURE]: %v", cause))
}

func TestErrorHandler_Classification(t *testing.T) {
	eh := NewErrorHandler(false)

	assert.True(t, eh.IsValidationError(validation.NewValidationError()))
	assert.True(t, eh.IsValidationError(apperrors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsValidationError(errors.New("x")))

	assert.True(t, eh.IsNotFoundError(apperrors.NewNotFoundError("task", "1")))

	assert.True(t, eh.IsSessionError(apperrors.NewUnauthenticatedError()))
	assert.True(t, eh.IsSessionError(apperrors.NewSessionExpiredError("get task", http.StatusForbidden)))
	assert.False(t, eh.IsSessionError(apperrors.NewNotFoundError("task", "1")))

	assert.Equal(t, "NOT_FOUND", eh.GetErrorCode(apperrors.NewNotFoundError("task", "1")))
	assert.Equal(t, "UNKNOWN_ERROR", eh.GetErrorCode(errors.New("x")))
}
