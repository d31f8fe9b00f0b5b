package validation

import (
	"task-manager/internal/domain"
)

// Field names used in task validation errors.
const (
	FieldTaskID  = "task_id"
	FieldTitle   = "title"
	FieldStatus  = "status"
	FieldDueDate = "due_date"
)

// TaskValidator provides validation for task input. Only required fields and
// the status enumeration are checked.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle checks that the title is present
func (tv *TaskValidator) ValidateTitle(title string) error {
	if !tv.validator.IsNonEmptyString(title) {
		ve := NewValidationError()
		ve.AddRequiredError(FieldTitle)
		return ve
	}
	return nil
}

// ValidateStatus checks that the status is present and known
func (tv *TaskValidator) ValidateStatus(status domain.Status) error {
	ve := NewValidationError()
	if status == "" {
		ve.AddRequiredError(FieldStatus)
		return ve
	}
	if !tv.validator.IsValidStatus(status) {
		ve.AddInvalidValueError(FieldStatus, status, "must be one of not_started, in_progress, completed")
		return ve
	}
	return nil
}

// ValidateDueDate checks a raw due date string
func (tv *TaskValidator) ValidateDueDate(raw string) error {
	if !tv.validator.IsValidDate(raw) {
		ve := NewValidationError()
		ve.AddInvalidFormatError(FieldDueDate, raw, "YYYY-MM-DD")
		return ve
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidTaskID(id) {
		ve := NewValidationError()
		if tv.validator.IsNonEmptyString(id) {
			ve.AddInvalidValueError(FieldTaskID, id, "must not have surrounding whitespace")
		} else {
			ve.AddRequiredError(FieldTaskID)
		}
		return ve
	}
	return nil
}

// ValidateInput validates a task payload for create or update
func (tv *TaskValidator) ValidateInput(in domain.TaskInput) error {
	ve := NewValidationError()
	if err := tv.ValidateTitle(in.Title); err != nil {
		ve.Merge(err)
	}
	if err := tv.ValidateStatus(in.Status); err != nil {
		ve.Merge(err)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// ValidateForUpdate validates the ID and payload of an update
func (tv *TaskValidator) ValidateForUpdate(id string, in domain.TaskInput) error {
	ve := NewValidationError()
	if err := tv.ValidateTaskID(id); err != nil {
		ve.Merge(err)
	}
	if err := tv.ValidateInput(in); err != nil {
		ve.Merge(err)
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
