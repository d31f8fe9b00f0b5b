package cli

import (
	"context"
	"strings"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler. Unless yes is set
// the user must confirm before the request is issued.
func NewDeleteCommand(app *App, yes bool) *DeleteCommand {
	return &DeleteCommand{app: app, yes: yes}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	id := args[0]
	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}

	if !c.yes {
		task, err := taskAPI.GetTask(ctx, id)
		if err != nil {
			return err
		}
		c.app.printf("Delete %q? (y/n): ", task.Title)
		answer, err := c.app.readLine()
		if err != nil || !confirmed(answer) {
			c.app.println("Delete cancelled.")
			return nil
		}
	}

	if err := taskAPI.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.app.println("Task deleted")
	return nil
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
