package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	ve := NewValidationError()
	if ve.Error() != "validation error" {
		t.Errorf("empty Error() = %q", ve.Error())
	}

	ve.AddRequiredError("title")
	if ve.Error() != "validation error for field 'title': title is required" {
		t.Errorf("single Error() = %q", ve.Error())
	}

	ve.AddInvalidFormatError("due_date", "x", "YYYY-MM-DD")
	if !strings.HasPrefix(ve.Error(), "multiple validation errors: ") {
		t.Errorf("multiple Error() = %q", ve.Error())
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if ve.GetUserFriendlyMessage() != "Input validation failed" {
		t.Errorf("unexpected empty message %q", ve.GetUserFriendlyMessage())
	}

	ve.AddRequiredError("title")
	if ve.GetUserFriendlyMessage() != "title is required" {
		t.Errorf("unexpected single message %q", ve.GetUserFriendlyMessage())
	}

	ve.AddRequiredError("status")
	msg := ve.GetUserFriendlyMessage()
	if !strings.Contains(msg, "- title is required") || !strings.Contains(msg, "- status is required") {
		t.Errorf("unexpected multi message %q", msg)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(NewValidationError()) {
		t.Errorf("expected ValidationError to be detected")
	}
	if !IsValidationError(fmt.Errorf("create task: %w", NewValidationError())) {
		t.Errorf("expected wrapped ValidationError to be detected")
	}
	if IsValidationError(errors.New("x")) {
		t.Errorf("plain error should not be a ValidationError")
	}
}

func TestValidationError_Merge(t *testing.T) {
	a := NewValidationError()
	b := NewValidationError()
	b.AddRequiredError("title")

	a.Merge(b)
	a.Merge(errors.New("ignored"))

	if len(a.Errors) != 1 || a.FieldMessage("title") == "" {
		t.Errorf("Merge did not copy field errors: %v", a.Errors)
	}
}
