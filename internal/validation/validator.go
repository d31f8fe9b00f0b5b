package validation

import (
	"strings"

	"task-manager/internal/domain"
)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskID checks if a task ID is usable in a request path
func (v *Validator) IsValidTaskID(id string) bool {
	trimmed := strings.TrimSpace(id)
	return trimmed != "" && trimmed == id
}

// IsValidStatus checks if a status is one of the known values
func (v *Validator) IsValidStatus(status domain.Status) bool {
	return status.IsValid()
}

// IsValidDate checks if s parses as a calendar date. Blank is valid (no deadline).
func (v *Validator) IsValidDate(s string) bool {
	_, err := domain.ParseDatePtr(s)
	return err == nil
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
