package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		wantErr  bool
	}{
		{"not_started", StatusNotStarted, false},
		{"in_progress", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"Not started", StatusNotStarted, false},
		{"IN-PROGRESS", StatusInProgress, false},
		{" completed ", StatusCompleted, false},
		{"", "", true},
		{"done", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestStatus_Cycle(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusNotStarted.Next())
	assert.Equal(t, StatusCompleted, StatusInProgress.Next())
	assert.Equal(t, StatusNotStarted, StatusCompleted.Next())
	assert.Equal(t, StatusCompleted, StatusNotStarted.Prev())
	assert.Equal(t, DefaultStatus, Status("weird").Next())
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Not started", StatusNotStarted.Label())
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "blocked", Status("blocked").Label())
}
