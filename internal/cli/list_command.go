package cli

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/tasklist"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	status string
	format string
}

// NewListCommand creates a new list command handler. status is a tab key
// ("all", "not_started", ...); an empty format uses the configured default.
func NewListCommand(app *App, status, format string) *ListCommand {
	return &ListCommand{app: app, status: status, format: format}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	tab, err := domain.ParseTab(c.status)
	if err != nil {
		return errors.NewInvalidInputError("status", c.status, "must be all, not_started, in_progress or completed")
	}
	format := c.format
	if format == "" {
		format = c.app.config.Commands.ListDefaultFormat
	}
	if format != config.FormatTable && format != config.FormatJSON {
		return errors.NewInvalidInputError("format", format, "must be table or json")
	}

	taskAPI, err := c.app.TaskAPI(ctx)
	if err != nil {
		return err
	}
	tasks, err := taskAPI.ListTasks(ctx)
	if err != nil {
		return err
	}

	items := tasklist.BuildItems(domain.FilterByTab(tasks, tab), c.app.today(), c.app.listOptions())
	if format == config.FormatJSON {
		return c.printJSON(items)
	}
	c.printTable(items)
	return nil
}

func (c *ListCommand) printTable(items []tasklist.Item) {
	if len(items) == 0 {
		c.app.println(tasklist.NoTasks)
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STATUS", "DUE")
	for _, item := range items {
		due := item.DueDate
		if item.Overdue {
			due += " (overdue)"
		}
		t.Row(item.Task.ID, item.Title, item.Badge.Label, due)
	}
	c.app.println(t.Render())
}

// taskJSON is the machine-readable list row.
type taskJSON struct {
	ID          string  `json:"task_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	Overdue     bool    `json:"overdue"`
}

func toJSON(item tasklist.Item) taskJSON {
	row := taskJSON{
		ID:          item.Task.ID,
		Title:       item.Task.Title,
		Description: item.Task.Description,
		Status:      string(item.Task.Status),
		Overdue:     item.Overdue,
	}
	if item.Task.HasDueDate() {
		due := item.Task.DueDate.String()
		row.DueDate = &due
	}
	return row
}

func (c *ListCommand) printJSON(items []tasklist.Item) error {
	rows := make([]taskJSON, 0, len(items))
	for _, item := range items {
		rows = append(rows, toJSON(item))
	}
	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
