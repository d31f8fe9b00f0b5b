// Package apitest provides an in-memory api.API for tests.
package apitest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Fake is an in-memory task service. Errors set on it are returned by the
// matching operation until cleared. Hold makes every call wait until Release.
type Fake struct {
	mu     sync.Mutex
	tasks  []*domain.Task
	nextID int
	calls  []string
	gate   chan struct{}

	ListErr   error
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// Created and Updated record the payloads received.
	Created []domain.TaskInput
	Updated []domain.TaskInput
}

// NewFake creates a fake holding copies of tasks.
func NewFake(tasks ...*domain.Task) *Fake {
	f := &Fake{}
	for _, t := range tasks {
		c := *t
		f.tasks = append(f.tasks, &c)
	}
	return f
}

// Hold makes subsequent calls block until Release or context cancellation.
func (f *Fake) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

// Release unblocks held calls.
func (f *Fake) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// SetError sets the error for one operation ("list", "get", "create",
// "update", "delete") under the fake's lock.
func (f *Fake) SetError(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch op {
	case "list":
		f.ListErr = err
	case "get":
		f.GetErr = err
	case "create":
		f.CreateErr = err
	case "update":
		f.UpdateErr = err
	case "delete":
		f.DeleteErr = err
	}
}

// Calls returns the operations received, e.g. "list", "create", "delete 1".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many calls of op were made.
func (f *Fake) CallCount(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == op || strings.HasPrefix(c, op+" ") {
			n++
		}
	}
	return n
}

// Tasks returns copies of the stored tasks.
func (f *Fake) Tasks() []*domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyTasks(f.tasks)
}

// SetTasks replaces the stored tasks, as another client would.
func (f *Fake) SetTasks(tasks ...*domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = copyTasks(tasks)
}

func (f *Fake) enter(ctx context.Context, call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	gate := f.gate
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return errors.NewTimeoutError(call, ctx.Err())
	}
}

func (f *Fake) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if err := f.enter(ctx, "list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return copyTasks(f.tasks), nil
}

func (f *Fake) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := f.enter(ctx, "get "+id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	c := *f.tasks[i]
	return &c, nil
}

func (f *Fake) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := f.enter(ctx, "create"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, in)
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.nextID++
	task := &domain.Task{
		ID:          fmt.Sprintf("task-%d", f.nextID),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
	}
	f.tasks = append(f.tasks, task)
	c := *task
	return &c, nil
}

func (f *Fake) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (*domain.Task, error) {
	if err := f.enter(ctx, "update "+id); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updated = append(f.Updated, in)
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}
	task := f.tasks[i]
	task.Title = in.Title
	task.Description = in.Description
	task.Status = in.Status
	task.DueDate = in.DueDate
	c := *task
	return &c, nil
}

func (f *Fake) DeleteTask(ctx context.Context, id string) error {
	if err := f.enter(ctx, "delete "+id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	i := f.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("task", id)
	}
	f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
	return nil
}

func (f *Fake) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func copyTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		c := *t
		out = append(out, &c)
	}
	return out
}
