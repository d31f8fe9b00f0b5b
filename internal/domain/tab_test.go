package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []*Task {
	return []*Task{
		{ID: "1", Title: "A", Status: StatusNotStarted},
		{ID: "2", Title: "B", Status: StatusCompleted},
		{ID: "3", Title: "C", Status: StatusInProgress},
		{ID: "4", Title: "D", Status: StatusCompleted},
	}
}

func TestFilterByTab(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		tab      Tab
		expected []string
	}{
		{TabAll, []string{"1", "2", "3", "4"}},
		{TabNotStarted, []string{"1"}},
		{TabInProgress, []string{"3"}},
		{TabCompleted, []string{"2", "4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			got := FilterByTab(tasks, tt.tab)
			ids := make([]string, len(got))
			for i, task := range got {
				ids[i] = task.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterByTab_AllReturnsSnapshotUnmodified(t *testing.T) {
	tasks := sampleTasks()
	got := FilterByTab(tasks, TabAll)
	require.Len(t, got, len(tasks))
	for i := range tasks {
		assert.Same(t, tasks[i], got[i])
	}
}

func TestFilterByTab_IsPure(t *testing.T) {
	tasks := sampleTasks()
	before := make([]Task, len(tasks))
	for i, task := range tasks {
		before[i] = *task
	}

	_ = FilterByTab(tasks, TabCompleted)
	_ = FilterByTab(tasks, TabNotStarted)

	for i, task := range tasks {
		assert.Equal(t, before[i], *task)
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		input    string
		expected Tab
		wantErr  bool
	}{
		{"all", TabAll, false},
		{"", TabAll, false},
		{"not-started", TabNotStarted, false},
		{"in_progress", TabInProgress, false},
		{"Completed", TabCompleted, false},
		{"archived", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTab(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTab_Label(t *testing.T) {
	assert.Equal(t, "All", TabAll.Label())
	assert.Equal(t, "In progress", TabInProgress.Label())
}
