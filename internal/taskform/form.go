// Package taskform holds the editable state of a task being created or
// edited and turns it into a validated payload.
package taskform

import (
	stderrors "errors"
	"strings"
	"sync"

	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

// ErrSubmitting is returned when a submit is attempted while another is in flight.
var ErrSubmitting = stderrors.New("a submission is already in progress")

// Form is the controlled input state behind the task modal.
type Form struct {
	mu sync.Mutex

	editing     *domain.Task
	title       string
	description string
	status      domain.Status
	dueDate     string

	fieldErrors map[string]string
	submitting  bool
	validator   *validation.TaskValidator
}

// New creates a form. A nil task opens the form in create mode with empty
// fields and the default status; otherwise every field is pre-populated.
func New(task *domain.Task) *Form {
	f := &Form{
		editing:   task,
		validator: validation.NewTaskValidator(),
	}
	f.load()
	return f
}

func (f *Form) load() {
	f.title, f.description, f.dueDate = "", "", ""
	f.status = domain.DefaultStatus
	f.fieldErrors = map[string]string{}
	if f.editing == nil {
		return
	}
	f.title = f.editing.Title
	f.description = f.editing.Description
	f.status = f.editing.Status
	if f.editing.HasDueDate() {
		f.dueDate = f.editing.DueDate.String()
	}
}

// IsEdit reports whether the form edits an existing task.
func (f *Form) IsEdit() bool {
	return f.editing != nil
}

// Editing returns the task being edited, or nil in create mode.
func (f *Form) Editing() *domain.Task {
	return f.editing
}

func (f *Form) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *Form) Description() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.description
}

func (f *Form) Status() domain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) DueDate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dueDate
}

// SetTitle updates the title and clears its error.
func (f *Form) SetTitle(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = s
	delete(f.fieldErrors, validation.FieldTitle)
}

// SetDescription updates the description. Newlines are kept.
func (f *Form) SetDescription(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.description = s
}

// SetStatus updates the status and clears its error.
func (f *Form) SetStatus(s domain.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
	delete(f.fieldErrors, validation.FieldStatus)
}

// CycleStatus moves to the next status in lifecycle order.
func (f *Form) CycleStatus() domain.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = f.status.Next()
	delete(f.fieldErrors, validation.FieldStatus)
	return f.status
}

// SetDueDate updates the raw due date text and clears its error.
func (f *Form) SetDueDate(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dueDate = s
	delete(f.fieldErrors, validation.FieldDueDate)
}

// FieldError returns the message recorded for field by the last submit.
func (f *Form) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors[field]
}

// HasErrors reports whether any field message is showing.
func (f *Form) HasErrors() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fieldErrors) > 0
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// BeginSubmit validates the fields and marks the form as submitting.
// Invalid input records field messages and returns a *validation.ValidationError.
func (f *Form) BeginSubmit() (domain.TaskInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return domain.TaskInput{}, ErrSubmitting
	}
	in, err := f.validate()
	if err != nil {
		return domain.TaskInput{}, err
	}
	f.submitting = true
	return in, nil
}

// EndSubmit re-enables submission.
func (f *Form) EndSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

// Submit validates the form and, when valid, hands the payload to fn.
// fn is never called for invalid input or while another submit is running.
func (f *Form) Submit(fn func(domain.TaskInput) error) error {
	in, err := f.BeginSubmit()
	if err != nil {
		return err
	}
	defer f.EndSubmit()
	return fn(in)
}

// Reset discards unsaved edits and field messages.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load()
	f.submitting = false
}

// validate must be called with mu held.
func (f *Form) validate() (domain.TaskInput, error) {
	ve := validation.NewValidationError()
	ve.Merge(f.validator.ValidateTitle(f.title))
	ve.Merge(f.validator.ValidateStatus(f.status))
	ve.Merge(f.validator.ValidateDueDate(f.dueDate))

	f.fieldErrors = ve.FieldMessages()
	if ve.HasErrors() {
		return domain.TaskInput{}, ve
	}

	due, _ := domain.ParseDatePtr(f.dueDate)
	return domain.TaskInput{
		Title:       strings.TrimSpace(f.title),
		Description: f.description,
		Status:      f.status,
		DueDate:     due,
	}, nil
}
