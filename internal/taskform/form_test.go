package taskform

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

func TestNew_CreateMode(t *testing.T) {
	f := New(nil)

	assert.False(t, f.IsEdit())
	assert.Nil(t, f.Editing())
	assert.Empty(t, f.Title())
	assert.Empty(t, f.Description())
	assert.Empty(t, f.DueDate())
	assert.Equal(t, domain.StatusNotStarted, f.Status())
}

func TestNew_EditModePrePopulates(t *testing.T) {
	due := domain.NewDate(2024, 5, 1)
	task := &domain.Task{
		ID:          "abc",
		Title:       "A",
		Description: "line 1\nline 2",
		Status:      domain.StatusInProgress,
		DueDate:     &due,
	}

	f := New(task)

	assert.True(t, f.IsEdit())
	assert.Same(t, task, f.Editing())
	assert.Equal(t, "A", f.Title())
	assert.Equal(t, "line 1\nline 2", f.Description())
	assert.Equal(t, domain.StatusInProgress, f.Status())
	assert.Equal(t, "2024-05-01", f.DueDate())
}

func TestSubmit_ValidPayloads(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		status   domain.Status
		due      string
		wantDue  string
		wantDesc string
	}{
		{"dashed date", "B", domain.StatusInProgress, "2024-05-01", "2024-05-01", ""},
		{"slashed date is normalised", "B", domain.StatusCompleted, "2024/05/01", "2024-05-01", ""},
		{"no date", "B", domain.StatusNotStarted, "", "", ""},
		{"blank date", "B", domain.StatusNotStarted, "   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(nil)
			f.SetTitle(tt.title)
			f.SetStatus(tt.status)
			f.SetDueDate(tt.due)

			var got *domain.TaskInput
			err := f.Submit(func(in domain.TaskInput) error {
				got = &in
				return nil
			})

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.status, got.Status)
			if tt.wantDue == "" {
				assert.Nil(t, got.DueDate)
			} else {
				require.NotNil(t, got.DueDate)
				assert.Equal(t, tt.wantDue, got.DueDate.String())
			}
			assert.False(t, f.Submitting())
		})
	}
}

func TestSubmit_EmptyTitleNeverCallsFn(t *testing.T) {
	for _, title := range []string{"", "   "} {
		f := New(nil)
		f.SetTitle(title)
		called := false

		err := f.Submit(func(domain.TaskInput) error {
			called = true
			return nil
		})

		assert.False(t, called)
		assert.True(t, validation.IsValidationError(err))
		assert.Equal(t, "title is required", f.FieldError(validation.FieldTitle))
	}
}

func TestSubmit_EmptyStatusShowsMessage(t *testing.T) {
	f := New(nil)
	f.SetTitle("A")
	f.SetStatus("")

	err := f.Submit(func(domain.TaskInput) error {
		t.Fatal("submit must not run")
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, "status is required", f.FieldError(validation.FieldStatus))
	assert.Empty(t, f.FieldError(validation.FieldTitle))
}

func TestSubmit_BadDate(t *testing.T) {
	f := New(nil)
	f.SetTitle("A")
	f.SetDueDate("next week")

	err := f.Submit(func(domain.TaskInput) error { return nil })

	assert.Error(t, err)
	assert.NotEmpty(t, f.FieldError(validation.FieldDueDate))

	f.SetDueDate("2024-05-01")
	assert.Empty(t, f.FieldError(validation.FieldDueDate), "editing the field clears its message")
	assert.NoError(t, f.Submit(func(domain.TaskInput) error { return nil }))
}

func TestSubmit_EditingTitleClearsMessage(t *testing.T) {
	f := New(nil)
	require.Error(t, f.Submit(func(domain.TaskInput) error { return nil }))
	assert.True(t, f.HasErrors())

	f.SetTitle("A")

	assert.False(t, f.HasErrors())
}

func TestSubmit_PropagatesFnError(t *testing.T) {
	f := New(nil)
	f.SetTitle("A")
	boom := stderrors.New("boom")

	err := f.Submit(func(domain.TaskInput) error { return boom })

	assert.Equal(t, boom, err)
	assert.False(t, f.Submitting(), "a failed submit re-enables the form")
}

func TestBeginSubmit_BlocksDuplicates(t *testing.T) {
	f := New(nil)
	f.SetTitle("A")

	_, err := f.BeginSubmit()
	require.NoError(t, err)
	assert.True(t, f.Submitting())

	_, err = f.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, f.Submit(func(domain.TaskInput) error { return nil }), ErrSubmitting)

	f.EndSubmit()
	_, err = f.BeginSubmit()
	assert.NoError(t, err)
}

func TestSubmit_ConcurrentCallsRunOnce(t *testing.T) {
	f := New(nil)
	f.SetTitle("A")
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex

	go func() {
		_ = f.Submit(func(domain.TaskInput) error {
			mu.Lock()
			calls++
			mu.Unlock()
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := f.Submit(func(domain.TaskInput) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	})
	close(release)

	assert.ErrorIs(t, err, ErrSubmitting)
	mu.Lock()
	assert.Equal(t, 1, calls)
	mu.Unlock()
}

func TestCycleStatus(t *testing.T) {
	f := New(nil)

	assert.Equal(t, domain.StatusInProgress, f.CycleStatus())
	assert.Equal(t, domain.StatusCompleted, f.CycleStatus())
	assert.Equal(t, domain.StatusNotStarted, f.CycleStatus())

	f.SetStatus("archived")
	assert.Equal(t, domain.StatusNotStarted, f.CycleStatus(), "unknown status cycles to the default")
}

func TestReset_DiscardsEdits(t *testing.T) {
	task := &domain.Task{ID: "abc", Title: "A", Status: domain.StatusCompleted}
	f := New(task)
	f.SetTitle("changed")
	f.SetStatus(domain.StatusInProgress)
	f.SetDueDate("bad")
	require.Error(t, f.Submit(func(domain.TaskInput) error { return nil }))

	f.Reset()

	assert.Equal(t, "A", f.Title())
	assert.Equal(t, domain.StatusCompleted, f.Status())
	assert.Empty(t, f.DueDate())
	assert.False(t, f.HasErrors())
}
