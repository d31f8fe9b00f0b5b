package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle tag of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is assigned to tasks created without an explicit status.
const DefaultStatus = StatusNotStarted

// Statuses returns the status values in lifecycle order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// IsValid reports whether s is one of the three known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human readable name. Unknown values are shown verbatim.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Next cycles through the statuses in lifecycle order.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultStatus
}

// Prev cycles backwards through the statuses.
func (s Status) Prev() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return DefaultStatus
}

// ParseStatus accepts the wire value or the label, case-insensitively, with
// spaces or hyphens in place of underscores.
func ParseStatus(s string) (Status, error) {
	normalized := normalizeKey(s)
	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return status, nil
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
