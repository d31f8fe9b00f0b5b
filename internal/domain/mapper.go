package domain

import (
	"strings"
	"time"

	"task-manager/internal/client"
	"task-manager/internal/logging"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// TaskMapper handles conversion between domain and wire Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// FromWire converts a wire Task to a domain Task. Unknown statuses are kept
// verbatim; an unparseable due date is dropped.
func (m *TaskMapper) FromWire(wt client.Task) Task {
	task := Task{
		ID:        wt.Key(),
		Title:     wt.Title,
		Status:    Status(wt.Status),
		UserID:    wt.UserID,
		CreatedAt: parseTimestamp(wt.CreatedAt),
		UpdatedAt: parseTimestamp(wt.UpdatedAt),
	}
	if wt.Description != nil {
		task.Description = *wt.Description
	}
	if wt.DueDate != nil {
		due, err := ParseDatePtr(*wt.DueDate)
		if err != nil {
			logging.Debugf("task %s: ignoring due date: %v", task.ID, err)
		}
		task.DueDate = due
	}
	return task
}

// FromWireSlice converts a slice of wire Tasks to domain Tasks.
func (m *TaskMapper) FromWireSlice(wireTasks []*client.Task) []*Task {
	tasks := make([]*Task, 0, len(wireTasks))
	for _, wt := range wireTasks {
		if wt == nil {
			continue
		}
		task := m.FromWire(*wt)
		tasks = append(tasks, &task)
	}
	return tasks
}

// ToCreateRequest converts an input to a create body. Absent optional
// fields are left nil so they are omitted.
func (m *TaskMapper) ToCreateRequest(in TaskInput) client.CreateTaskRequest {
	return client.CreateTaskRequest{
		Title:       strings.TrimSpace(in.Title),
		Description: optionalString(in.Description),
		Status:      string(in.Status),
		DueDate:     optionalDate(in.DueDate),
	}
}

// ToUpdateRequest converts an input to a full-replacement update body.
func (m *TaskMapper) ToUpdateRequest(in TaskInput) client.UpdateTaskRequest {
	return client.UpdateTaskRequest{
		Title:       strings.TrimSpace(in.Title),
		Description: optionalString(in.Description),
		Status:      string(in.Status),
		DueDate:     optionalDate(in.DueDate),
	}
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func optionalDate(d *Date) *string {
	if d == nil || d.IsZero() {
		return nil
	}
	s := d.String()
	return &s
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
