package cli

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/tasklist"
)

// GetCommand prints a single task.
type GetCommand struct {
	app *App
}

// NewGetCommand creates a new get command handler
func NewGetCommand(app *App) *GetCommand {
	return &GetCommand{app: app}
}

// Execute runs the get command
func (c *GetCommand) Execute(ctx context.Context, args []string) error {
	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}
	task, err := taskAPI.GetTask(ctx, args[0])
	if err != nil {
		return err
	}
	c.printTask(task)
	return nil
}

func (c *GetCommand) printTask(task *domain.Task) {
	opts := c.app.listOptions()
	opts.TitleWidth = 0
	items := tasklist.BuildItems([]*domain.Task{task}, c.app.today(), opts)
	c.app.printf("ID: %s\n", task.ID)
	c.app.printf("%s", tasklist.RenderPlain(items, false))
}
