package domain

import (
	"strings"
	"time"
)

// Task represents a task record held by the remote task service.
// ID is assigned by the service and never changes.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      Status
	DueDate     *Date
	UserID      string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// TaskInput is the editable part of a task, sent on create and update.
// Update replaces every field wholesale.
type TaskInput struct {
	Title       string
	Description string
	Status      Status
	DueDate     *Date
}

// NewTaskInput creates an input with the given title and the default status.
func NewTaskInput(title string) TaskInput {
	return TaskInput{
		Title:  title,
		Status: DefaultStatus,
	}
}

// IsValid checks the record invariants: a non-blank title and a known status.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Status.IsValid()
}

// HasDueDate reports whether the task has a deadline.
func (t Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// IsOverdue reports whether the due date is strictly before today and the
// task is not completed.
func (t Task) IsOverdue(today Date) bool {
	if !t.HasDueDate() || t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Before(today)
}

// Input returns the editable fields of the task.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
