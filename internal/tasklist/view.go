package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/domain"
)

// View is the interactive list: derived items, a cursor, a busy flag and
// the edit/delete affordances.
type View struct {
	items   []Item
	cursor  int
	loading bool
	busy    string
	pending string // task ID awaiting delete confirmation

	opts     Options
	styles   Styles
	onEdit   func(*domain.Task)
	onDelete func(id string)
}

// NewView creates an empty view. Either callback may be nil.
func NewView(opts Options, onEdit func(*domain.Task), onDelete func(id string)) *View {
	return &View{
		opts:     opts,
		styles:   DefaultStyles(),
		busy:     "Loading…",
		onEdit:   onEdit,
		onDelete: onDelete,
	}
}

// SetTasks replaces the displayed tasks. The cursor is clamped and a
// pending delete is dropped if its task is gone.
func (v *View) SetTasks(tasks []*domain.Task, today domain.Date) {
	v.items = BuildItems(tasks, today, v.opts)
	v.cursor = clamp(v.cursor, len(v.items))
	if v.pending != "" && v.indexOf(v.pending) < 0 {
		v.pending = ""
	}
}

// Items returns the derived items in display order.
func (v *View) Items() []Item {
	return v.items
}

// Len returns the number of items.
func (v *View) Len() int {
	return len(v.items)
}

// SetLoading toggles the busy indicator.
func (v *View) SetLoading(loading bool) {
	v.loading = loading
}

// Loading reports whether the busy indicator is shown.
func (v *View) Loading() bool {
	return v.loading
}

// SetBusyIndicator replaces the text shown while loading, e.g. a spinner frame.
func (v *View) SetBusyIndicator(s string) {
	v.busy = s
}

// Cursor returns the selected index.
func (v *View) Cursor() int {
	return v.cursor
}

func (v *View) MoveUp() {
	if v.cursor > 0 {
		v.cursor--
	}
}

func (v *View) MoveDown() {
	if v.cursor < len(v.items)-1 {
		v.cursor++
	}
}

// Selected returns the item under the cursor.
func (v *View) Selected() (Item, bool) {
	if len(v.items) == 0 {
		return Item{}, false
	}
	return v.items[v.cursor], true
}

// Edit invokes the edit callback with the selected task.
func (v *View) Edit() bool {
	item, ok := v.Selected()
	if !ok || v.onEdit == nil {
		return false
	}
	v.onEdit(item.Task)
	return true
}

// RequestDelete opens the inline confirmation for the selected task.
// No delete is issued until ConfirmDelete.
func (v *View) RequestDelete() bool {
	item, ok := v.Selected()
	if !ok {
		return false
	}
	v.pending = item.Task.ID
	return true
}

// PendingDelete returns the item awaiting confirmation.
func (v *View) PendingDelete() (Item, bool) {
	if v.pending == "" {
		return Item{}, false
	}
	i := v.indexOf(v.pending)
	if i < 0 {
		return Item{}, false
	}
	return v.items[i], true
}

// Confirming reports whether a delete confirmation is open.
func (v *View) Confirming() bool {
	return v.pending != ""
}

// ConfirmDelete closes the confirmation and invokes the delete callback.
func (v *View) ConfirmDelete() bool {
	id := v.pending
	v.pending = ""
	if id == "" || v.onDelete == nil {
		return false
	}
	v.onDelete(id)
	return true
}

// CancelDelete closes the confirmation without issuing anything.
func (v *View) CancelDelete() {
	v.pending = ""
}

func (v *View) indexOf(id string) int {
	for i, item := range v.items {
		if item.Task.ID == id {
			return i
		}
	}
	return -1
}

// Render draws the list with styles. The selected card shows its full title.
func (v *View) Render(width int) string {
	s := v.styles
	var blocks []string
	if v.loading {
		blocks = append(blocks, s.Busy.Render(v.busy))
	}
	if len(v.items) == 0 {
		blocks = append(blocks, s.Muted.Render(NoTasks))
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}

	for i, item := range v.items {
		blocks = append(blocks, v.renderCard(item, i == v.cursor, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (v *View) renderCard(item Item, selected bool, width int) string {
	s := v.styles

	marker, title, titleStyle := "  ", item.Title, s.Title
	if selected {
		marker, title, titleStyle = "> ", item.FullTitle, s.Selected
	}
	if width > 4 {
		titleStyle = titleStyle.MaxWidth(width - 2)
	}
	header := marker + titleStyle.Render(title) + " " + s.Badges[item.Badge.Tone].Render(item.Badge.Label)

	descStyle := s.Description
	if !item.HasDescription {
		descStyle = s.Muted
	}
	lines := []string{header, "  " + descStyle.Render(firstLine(item.Description))}

	if item.DueDate != "" {
		due := "Due " + item.DueDate
		if item.Overdue {
			lines = append(lines, "  "+s.Overdue.Render(due+" (overdue)"))
		} else {
			lines = append(lines, "  "+s.Due.Render(due))
		}
	}
	if v.pending == item.Task.ID {
		lines = append(lines, "  "+s.Confirm.Render(fmt.Sprintf("Delete %q? (y/n)", item.FullTitle)))
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderPlain draws the list without styling. Each card is separated by a
// blank line; overdue dates are marked "(overdue)".
func (v *View) RenderPlain() string {
	return RenderPlain(v.items, v.loading)
}

// RenderPlain draws items without styling.
func RenderPlain(items []Item, loading bool) string {
	var b strings.Builder
	if loading {
		b.WriteString("Loading…\n")
	}
	if len(items) == 0 {
		b.WriteString(NoTasks + "\n")
		return b.String()
	}
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s [%s]\n", item.Title, item.Badge.Label)
		fmt.Fprintf(&b, "  %s\n", firstLine(item.Description))
		if item.DueDate != "" {
			if item.Overdue {
				fmt.Fprintf(&b, "  Due %s (overdue)\n", item.DueDate)
			} else {
				fmt.Fprintf(&b, "  Due %s\n", item.DueDate)
			}
		}
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " " + ellipsis
	}
	return s
}

func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
