// Package tui is the interactive task page: a bubbletea program over a
// taskpage.Page with a list, tab filters and a form modal.
package tui

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-manager/internal/auth"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/taskform"
	"task-manager/internal/taskpage"
	"task-manager/internal/tasklist"
	"task-manager/internal/validation"
)

const maxNotices = 3

type (
	userMsg      struct{ user *auth.User }
	loadedMsg    struct{ err error }
	savedMsg     struct{ err error }
	deletedMsg   struct{ err error }
	signedOutMsg struct{ err error }
)

// Model is the bubbletea model for the task page.
type Model struct {
	ctx      context.Context
	page     *taskpage.Page
	identity auth.Identity
	keys     KeyMap
	styles   styles
	today    func() domain.Date

	list    *tasklist.View
	form    *formModel
	spinner spinner.Model
	user    string
	tab     domain.Tab
	notices []taskpage.Notice
	width   int

	queued    tea.Cmd
	signedOut bool
}

// New creates the model. The page is mounted by Init.
func New(ctx context.Context, page *taskpage.Page, identity auth.Identity, opts tasklist.Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:      ctx,
		page:     page,
		identity: identity,
		keys:     DefaultKeyMap(),
		styles:   defaultStyles(),
		today:    domain.Today,
		spinner:  sp,
		user:     auth.GuestLabel,
		tab:      domain.TabAll,
	}
	m.list = tasklist.NewView(opts, m.openEdit, m.queueDelete)
	return m
}

// Run starts the program and blocks until it exits.
func Run(ctx context.Context, page *taskpage.Page, identity auth.Identity, opts tasklist.Options, progOpts ...tea.ProgramOption) (*Model, error) {
	m := New(ctx, page, identity, opts)
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, progOpts...)
	_, err := tea.NewProgram(m, progOpts...).Run()
	page.Close()
	return m, err
}

// SignedOut reports whether the user signed out from the page.
func (m *Model) SignedOut() bool {
	return m.signedOut
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchUser, m.mount)
}

func (m *Model) fetchUser() tea.Msg {
	user, err := m.identity.CurrentUser(m.ctx)
	if err != nil {
		return userMsg{}
	}
	return userMsg{user: user}
}

func (m *Model) mount() tea.Msg {
	return loadedMsg{err: m.page.Mount(m.ctx)}
}

func (m *Model) refresh() tea.Msg {
	return loadedMsg{err: m.page.Refresh(m.ctx)}
}

func (m *Model) submit() tea.Msg {
	return savedMsg{err: m.page.Submit(m.ctx)}
}

func (m *Model) signOut() tea.Msg {
	return signedOutMsg{err: m.identity.SignOut(m.ctx)}
}

func (m *Model) queueDelete(id string) {
	m.queued = func() tea.Msg {
		return deletedMsg{err: m.page.Delete(m.ctx, id)}
	}
}

func (m *Model) openEdit(task *domain.Task) {
	m.openForm(m.page.OpenEdit(task))
}

func (m *Model) openForm(f *taskform.Form, err error) tea.Cmd {
	if err != nil {
		return nil
	}
	m.form = newFormModel(f, m.width)
	return m.form.setFocus(fieldTitle)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.form != nil {
			m.form.resize(msg.Width)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.sync()
		return m, cmd

	case userMsg:
		m.user = auth.DisplayName(msg.user)
		return m, nil

	case loadedMsg:
		m.handleResult(msg.err)
		return m, nil

	case deletedMsg:
		m.handleResult(msg.err)
		return m, nil

	case savedMsg:
		if validation.IsValidationError(msg.err) || stderrors.Is(msg.err, taskform.ErrSubmitting) {
			msg.err = nil
		}
		m.handleResult(msg.err)
		return m, nil

	case signedOutMsg:
		if msg.err != nil {
			m.addNotice(taskpage.NoticeError, "Sign out failed", msg.err)
			return m, nil
		}
		m.signedOut = true
		m.page.Close()
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.page.Close()
			return m, tea.Quit
		}
		if m.form != nil {
			return m, m.updateForm(msg)
		}
		if m.list.Confirming() {
			return m, m.updateConfirm(msg)
		}
		return m, m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.page.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.SignOut):
		return m.signOut
	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.New):
		return m.openForm(m.page.OpenCreate())
	case key.Matches(msg, m.keys.Edit):
		m.list.Edit()
		if m.form != nil {
			return m.form.setFocus(fieldTitle)
		}
	case key.Matches(msg, m.keys.Delete):
		m.list.RequestDelete()
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.queued = nil
		m.list.ConfirmDelete()
		cmd := m.queued
		m.queued = nil
		return cmd
	case key.Matches(msg, m.keys.Deny):
		m.list.CancelDelete()
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.page.Cancel()
		m.form = nil
		return nil
	case key.Matches(msg, m.keys.Save):
		m.form.push()
		return m.submit
	}
	return m.form.update(msg, m.keys)
}

func (m *Model) switchTab(step int) {
	tabs := domain.Tabs()
	i := 0
	for j, t := range tabs {
		if t == m.tab {
			i = j
		}
	}
	m.tab = tabs[(i+step+len(tabs))%len(tabs)]
	m.page.SetTab(m.tab)
	m.sync()
}

func (m *Model) handleResult(err error) {
	if stderrors.Is(err, taskpage.ErrBusy) {
		m.addNotice(taskpage.NoticeError, "Another operation is in progress", nil)
	}
	m.sync()
}

// sync pulls the page state into the view.
func (m *Model) sync() {
	state := m.page.State()
	m.tab = state.ActiveTab
	m.list.SetTasks(state.Visible, m.today())
	m.list.SetLoading(state.Loading)
	m.list.SetBusyIndicator(m.spinner.View() + " Loading…")
	for _, n := range m.page.TakeNotices() {
		m.addNotice(n.Kind, n.Message, n.Err)
	}
	if !state.ModalOpen {
		m.form = nil
	}
}

func (m *Model) addNotice(kind taskpage.NoticeKind, msg string, err error) {
	m.notices = append(m.notices, taskpage.Notice{Kind: kind, Message: msg, Err: err})
	if len(m.notices) > maxNotices {
		m.notices = m.notices[len(m.notices)-maxNotices:]
	}
}

func (m *Model) View() string {
	s := m.styles
	var sections []string

	sections = append(sections, s.Header.Render("Signed in as "+s.User.Render(m.user)))
	sections = append(sections, m.renderTabs())

	if m.form != nil {
		sections = append(sections, m.form.view(s, m.keys))
	} else {
		sections = append(sections, m.list.Render(m.width))
	}

	if notices := m.renderNotices(); notices != "" {
		sections = append(sections, notices)
	}
	if m.form == nil {
		sections = append(sections, helpLine(s, m.keys.listHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) renderTabs() string {
	tabs := domain.Tabs()
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t == m.tab {
			parts = append(parts, m.styles.ActiveTab.Render(t.Label()))
		} else {
			parts = append(parts, m.styles.Tab.Render(t.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

func (m *Model) renderNotices() string {
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		text := n.Message
		if n.Err != nil {
			text += ": " + errors.GetUserMessage(n.Err)
		}
		if n.Kind == taskpage.NoticeError {
			lines = append(lines, m.styles.Error.Render(text))
		} else {
			lines = append(lines, m.styles.Success.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}
