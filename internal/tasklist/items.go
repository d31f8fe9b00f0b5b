// Package tasklist derives display rows from a task snapshot and renders them.
package tasklist

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"task-manager/internal/domain"
)

// Placeholder texts.
const (
	NoDescription = "No description"
	NoTasks       = "No tasks"
	ellipsis      = "…"
)

// Tone is the visual class of a status badge.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneActive
	ToneSuccess
)

func (t Tone) String() string {
	switch t {
	case ToneActive:
		return "active"
	case ToneSuccess:
		return "success"
	default:
		return "neutral"
	}
}

// Badge is the status tag shown on a card.
type Badge struct {
	Label string
	Tone  Tone
}

// BadgeFor maps a status to its badge. Unknown statuses are neutral and
// keep their raw value as the label.
func BadgeFor(s domain.Status) Badge {
	switch s {
	case domain.StatusInProgress:
		return Badge{Label: s.Label(), Tone: ToneActive}
	case domain.StatusCompleted:
		return Badge{Label: s.Label(), Tone: ToneSuccess}
	default:
		return Badge{Label: s.Label(), Tone: ToneNeutral}
	}
}

// Options controls how items are derived.
type Options struct {
	DateFormat string
	TitleWidth int
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{DateFormat: "2006/01/02", TitleWidth: 40}
}

// Item is the derived display of one task.
type Item struct {
	Task           *domain.Task
	Title          string // truncated to the title width
	FullTitle      string
	Badge          Badge
	Description    string // the description or NoDescription
	HasDescription bool
	DueDate        string // empty when the task has no deadline
	Overdue        bool
}

// Truncated reports whether the title was shortened.
func (it Item) Truncated() bool {
	return it.Title != it.FullTitle
}

// BuildItems derives one item per task, preserving order.
func BuildItems(tasks []*domain.Task, today domain.Date, opts Options) []Item {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultOptions().DateFormat
	}
	items := make([]Item, 0, len(tasks))
	for _, task := range tasks {
		if task == nil {
			continue
		}
		items = append(items, buildItem(task, today, opts))
	}
	return items
}

func buildItem(task *domain.Task, today domain.Date, opts Options) Item {
	item := Item{
		Task:        task,
		Title:       Truncate(task.Title, opts.TitleWidth),
		FullTitle:   task.Title,
		Badge:       BadgeFor(task.Status),
		Description: NoDescription,
		Overdue:     task.IsOverdue(today),
	}
	if strings.TrimSpace(task.Description) != "" {
		item.Description = task.Description
		item.HasDescription = true
	}
	if task.HasDueDate() {
		item.DueDate = task.DueDate.Format(opts.DateFormat)
	}
	return item
}

// Truncate shortens s to at most width display cells, ending in an
// ellipsis when cut. Wide (CJK) runes count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
