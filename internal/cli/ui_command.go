package cli

import (
	"context"

	"task-manager/internal/taskpage"
)

// UICommand opens the interactive task page.
type UICommand struct {
	app *App
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{app: app}
}

// Execute runs the page until the user quits or signs out.
func (c *UICommand) Execute(ctx context.Context, args []string) error {
	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}
	identity, err := c.app.Identity()
	if err != nil {
		return err
	}

	page := taskpage.New(taskAPI)
	defer page.Close()

	signedOut, err := c.app.runUI(ctx, page, identity, c.app.listOptions())
	if err != nil {
		return err
	}
	if signedOut {
		c.app.println("Signed out")
	}
	return nil
}
