// Package taskpage owns the task collection snapshot and drives the
// fetch, create, update and delete flow behind the task page.
package taskpage

import (
	"context"
	"sync"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/logging"
)

// Op names a store operation.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Result is the outcome of a store operation. Err is the failure of the
// operation itself; RefreshErr is a failed refetch after a successful
// mutation. Discarded is set when the store was closed before the result
// arrived, in which case the snapshot was not touched.
type Result struct {
	Op         Op
	Task       *domain.Task
	Err        error
	RefreshErr error
	Discarded  bool
}

// OK reports whether the operation itself succeeded.
func (r Result) OK() bool {
	return r.Err == nil && !r.Discarded
}

// Store is the single owner of the task snapshot. The snapshot is only ever
// replaced wholesale by a successful list call.
type Store struct {
	api api.API

	mu     sync.RWMutex
	tasks  []*domain.Task
	loaded bool
	closed bool
}

// NewStore creates an empty store over a task API.
func NewStore(a api.API) *Store {
	return &Store{
		api:   a,
		tasks: []*domain.Task{},
	}
}

// Snapshot returns the last successfully fetched collection.
func (s *Store) Snapshot() []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Task(nil), s.tasks...)
}

// Loaded reports whether at least one fetch has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Load fetches the full collection and replaces the snapshot on success.
func (s *Store) Load(ctx context.Context) Result {
	res := Result{Op: OpLoad}
	res.Discarded, res.Err = s.fetch(ctx)
	return res
}

// Create creates a task and refetches the collection.
func (s *Store) Create(ctx context.Context, in domain.TaskInput) Result {
	task, err := s.api.CreateTask(ctx, in)
	return s.afterMutation(ctx, Result{Op: OpCreate, Task: task, Err: err})
}

// Update replaces the task's editable fields and refetches the collection.
func (s *Store) Update(ctx context.Context, id string, in domain.TaskInput) Result {
	task, err := s.api.UpdateTask(ctx, id, in)
	return s.afterMutation(ctx, Result{Op: OpUpdate, Task: task, Err: err})
}

// Remove deletes a task and refetches the collection.
func (s *Store) Remove(ctx context.Context, id string) Result {
	err := s.api.DeleteTask(ctx, id)
	return s.afterMutation(ctx, Result{Op: OpRemove, Err: err})
}

// Close detaches the store. Results arriving afterwards are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *Store) afterMutation(ctx context.Context, res Result) Result {
	if s.isClosed() {
		res.Discarded = true
		return res
	}
	if res.Err != nil {
		logging.Debug("task mutation failed", "op", string(res.Op), "error", res.Err)
		return res
	}
	res.Discarded, res.RefreshErr = s.fetch(ctx)
	return res
}

func (s *Store) fetch(ctx context.Context) (discarded bool, err error) {
	var tasks []*domain.Task
	tasks, err = s.api.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true, err
	}
	if err != nil {
		logging.Debug("task fetch failed", "error", err)
		return false, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	s.tasks = tasks
	s.loaded = true
	return false, nil
}
