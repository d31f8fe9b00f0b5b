package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/taskform"
)

// TaskFields carries the task flags. A nil field was not given.
type TaskFields struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// apply copies the given fields into the form the way the modal would.
func (f TaskFields) apply(form *taskform.Form) {
	if f.Title != nil {
		form.SetTitle(*f.Title)
	}
	if f.Description != nil {
		form.SetDescription(*f.Description)
	}
	if f.Status != nil {
		status, err := domain.ParseStatus(*f.Status)
		if err != nil {
			// Left as typed so validation reports it.
			status = domain.Status(*f.Status)
		}
		form.SetStatus(status)
	}
	if f.DueDate != nil {
		form.SetDueDate(*f.DueDate)
	}
}

// CreateCommand creates a task through the task form.
type CreateCommand struct {
	app    *App
	fields TaskFields
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(app *App, fields TaskFields) *CreateCommand {
	return &CreateCommand{app: app, fields: fields}
}

// Execute runs the create command. Invalid input is reported before any
// request is made.
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	form := taskform.New(nil)
	c.fields.apply(form)
	if _, err := form.BeginSubmit(); err != nil {
		return err
	}
	form.EndSubmit()

	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}

	var created *domain.Task
	err = form.Submit(func(in domain.TaskInput) error {
		var callErr error
		created, callErr = taskAPI.CreateTask(ctx, in)
		return callErr
	})
	if err != nil {
		return err
	}
	c.app.printf("Task created: %s (%s)\n", created.Title, created.ID)
	return nil
}

// UpdateCommand replaces a task's fields. Fields not given keep their
// current values, as the edit form is pre-populated from the record.
type UpdateCommand struct {
	app    *App
	fields TaskFields
}

// NewUpdateCommand creates a new update command handler
func NewUpdateCommand(app *App, fields TaskFields) *UpdateCommand {
	return &UpdateCommand{app: app, fields: fields}
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context, args []string) error {
	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}
	current, err := taskAPI.GetTask(ctx, args[0])
	if err != nil {
		return err
	}

	form := taskform.New(current)
	c.fields.apply(form)

	var updated *domain.Task
	err = form.Submit(func(in domain.TaskInput) error {
		var callErr error
		updated, callErr = taskAPI.UpdateTask(ctx, current.ID, in)
		return callErr
	})
	if err != nil {
		return err
	}
	c.app.printf("Task updated: %s (%s)\n", updated.Title, updated.ID)
	return nil
}
