package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-manager/internal/taskform"
	"task-manager/internal/tasklist"
	"task-manager/internal/validation"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldDueDate
	fieldCount
)

// formModel binds bubbles inputs to a taskform.Form.
type formModel struct {
	form        *taskform.Form
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	focus       int
}

func newFormModel(f *taskform.Form, width int) *formModel {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.SetValue(f.Title())

	desc := textarea.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 2000
	desc.ShowLineNumbers = false
	desc.SetHeight(4)
	desc.SetValue(f.Description())

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.SetValue(f.DueDate())

	m := &formModel{form: f, title: title, description: desc, due: due}
	m.resize(width)
	m.setFocus(fieldTitle)
	return m
}

func (m *formModel) resize(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	m.title.Width = w
	m.due.Width = w
	m.description.SetWidth(w)
}

func (m *formModel) setFocus(field int) tea.Cmd {
	m.focus = (field + fieldCount) % fieldCount
	m.title.Blur()
	m.description.Blur()
	m.due.Blur()
	switch m.focus {
	case fieldTitle:
		return m.title.Focus()
	case fieldDescription:
		return m.description.Focus()
	case fieldDueDate:
		return m.due.Focus()
	}
	return nil
}

// push copies the input values into the form.
func (m *formModel) push() {
	if v := m.title.Value(); v != m.form.Title() {
		m.form.SetTitle(v)
	}
	if v := m.description.Value(); v != m.form.Description() {
		m.form.SetDescription(v)
	}
	if v := m.due.Value(); v != m.form.DueDate() {
		m.form.SetDueDate(v)
	}
}

func (m *formModel) update(msg tea.KeyMsg, keys KeyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextField):
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, keys.PrevField):
		return m.setFocus(m.focus - 1)
	case msg.Type == tea.KeyEnter && m.focus != fieldDescription:
		return m.setFocus(m.focus + 1)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldStatus:
		switch {
		case key.Matches(msg, keys.NextValue):
			m.form.CycleStatus()
		case key.Matches(msg, keys.PrevValue):
			m.form.SetStatus(m.form.Status().Prev())
		}
	case fieldDueDate:
		m.due, cmd = m.due.Update(msg)
	}
	m.push()
	return cmd
}

func (m *formModel) view(s styles, keys KeyMap) string {
	heading := "New task"
	if m.form.IsEdit() {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(s.Label.Render(heading) + "\n\n")

	field := func(label string, focused bool, body, errField string) {
		marker := "  "
		if focused {
			marker = "> "
		}
		b.WriteString(marker + s.Label.Render(label) + "\n")
		b.WriteString(body + "\n")
		if msg := m.form.FieldError(errField); msg != "" {
			b.WriteString(s.FieldErr.Render(msg) + "\n")
		}
	}

	field("Title", m.focus == fieldTitle, m.title.View(), validation.FieldTitle)
	field("Description", m.focus == fieldDescription, m.description.View(), "")
	badge := tasklist.BadgeFor(m.form.Status())
	field("Status", m.focus == fieldStatus, "< "+badge.Label+" >", validation.FieldStatus)
	field("Due date", m.focus == fieldDueDate, m.due.View(), validation.FieldDueDate)

	if m.form.Submitting() {
		b.WriteString("\nSaving…\n")
	}
	b.WriteString("\n" + helpLine(s, keys.formHelp()))
	return s.Modal.Render(b.String())
}

func helpLine(s styles, bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return s.Help.Render(strings.Join(parts, " • "))
}
