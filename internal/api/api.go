package api

import (
	"context"

	"task-manager/internal/client"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// API defines the task operations in domain terms.
type API interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, in domain.TaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type apiImpl struct {
	client        client.TaskClient
	mapper        *domain.TaskMapper
	taskValidator *validation.TaskValidator
}

// New creates a new API instance over a task client.
func New(c client.TaskClient) API {
	return &apiImpl{
		client:        c,
		mapper:        domain.NewTaskMapper(),
		taskValidator: validation.NewTaskValidator(),
	}
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	wireTasks, err := a.client.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return a.mapper.FromWireSlice(wireTasks), nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := a.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	wireTask, err := a.client.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	task := a.mapper.FromWire(*wireTask)
	return &task, nil
}

func (a *apiImpl) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := a.taskValidator.ValidateInput(in); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	wireTask, err := a.client.CreateTask(ctx, a.mapper.ToCreateRequest(in))
	if err != nil {
		return nil, err
	}
	task := a.mapper.FromWire(*wireTask)
	return &task, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (*domain.Task, error) {
	if err := a.taskValidator.ValidateForUpdate(id, in); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	wireTask, err := a.client.UpdateTask(ctx, id, a.mapper.ToUpdateRequest(in))
	if err != nil {
		return nil, err
	}
	task := a.mapper.FromWire(*wireTask)
	if task.ID == "" {
		task.ID = id
	}
	return &task, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id string) error {
	if err := a.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	return a.client.DeleteTask(ctx, id)
}
