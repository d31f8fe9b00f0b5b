package taskpage

import (
	"context"
	stderrors "errors"
	"sync"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/taskform"
)

var (
	// ErrBusy is returned when an operation is dispatched while another is loading.
	ErrBusy = stderrors.New("another task operation is in progress")
	// ErrClosed is returned by a page that has been torn down.
	ErrClosed = stderrors.New("task page is closed")
	// ErrNoForm is returned by Submit when the modal is not open.
	ErrNoForm = stderrors.New("no task form is open")
)

const (
	MsgCreated      = "Task created"
	MsgUpdated      = "Task updated"
	MsgDeleted      = "Task deleted"
	MsgLoadFailed   = "Failed to load tasks"
	MsgSaveFailed   = "Failed to save task"
	MsgDeleteFailed = "Failed to delete task"
)

// NoticeKind distinguishes success notices from error notices.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is a non-blocking message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

// State is a consistent copy of the page state.
type State struct {
	Tasks     []*domain.Task
	Visible   []*domain.Task
	Loading   bool
	ModalOpen bool
	Editing   *domain.Task
	ActiveTab domain.Tab
	Notices   []Notice
}

// Page is the task page controller.
type Page struct {
	store *Store

	mu        sync.Mutex
	loading   bool
	modalOpen bool
	editing   *domain.Task
	form      *taskform.Form
	tab       domain.Tab
	notices   []Notice
	closed    bool
}

// New creates a page over a task API. Nothing is fetched until Mount.
func New(a api.API) *Page {
	return &Page{
		store: NewStore(a),
		tab:   domain.TabAll,
	}
}

// Mount performs the initial fetch. A failure leaves the list empty and
// adds an error notice.
func (p *Page) Mount(ctx context.Context) error {
	return p.Refresh(ctx)
}

// Refresh refetches the collection.
func (p *Page) Refresh(ctx context.Context) error {
	if err := p.begin(); err != nil {
		return err
	}
	res := p.store.Load(ctx)
	return p.finish(res, func() {
		if res.Err != nil {
			p.notify(NoticeError, MsgLoadFailed, res.Err)
		}
	})
}

// OpenCreate opens the modal in create mode.
func (p *Page) OpenCreate() (*taskform.Form, error) {
	return p.open(nil)
}

// OpenEdit opens the modal pre-populated from task.
func (p *Page) OpenEdit(task *domain.Task) (*taskform.Form, error) {
	if task == nil {
		return p.open(nil)
	}
	c := *task
	return p.open(&c)
}

func (p *Page) open(task *domain.Task) (*taskform.Form, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	p.editing = task
	p.form = taskform.New(task)
	p.modalOpen = true
	return p.form, nil
}

// Form returns the open form, or nil when the modal is closed.
func (p *Page) Form() *taskform.Form {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Cancel closes the modal and discards unsaved edits.
func (p *Page) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.form != nil {
		p.form.Reset()
	}
	p.closeModal()
}

// Submit validates the open form and creates or updates the task depending
// on whether a task is being edited. Invalid input issues no call and keeps
// the modal open with field messages. A failed call keeps the modal open.
func (p *Page) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	form, editing := p.form, p.editing
	if !p.modalOpen || form == nil {
		p.mu.Unlock()
		return ErrNoForm
	}
	if p.loading {
		p.mu.Unlock()
		return ErrBusy
	}
	p.mu.Unlock()

	in, err := form.BeginSubmit()
	if err != nil {
		return err
	}
	defer form.EndSubmit()
	if err := p.begin(); err != nil {
		return err
	}

	var res Result
	if editing == nil {
		res = p.store.Create(ctx, in)
	} else {
		res = p.store.Update(ctx, editing.ID, in)
	}
	return p.finish(res, func() {
		if res.Err != nil {
			p.notify(NoticeError, MsgSaveFailed, res.Err)
			return
		}
		if p.form == form {
			p.closeModal()
		}
		if editing == nil {
			p.notify(NoticeSuccess, MsgCreated, nil)
		} else {
			p.notify(NoticeSuccess, MsgUpdated, nil)
		}
		if res.RefreshErr != nil {
			p.notify(NoticeError, MsgLoadFailed, res.RefreshErr)
		}
	})
}

// Delete removes a task. Confirmation is the caller's concern.
func (p *Page) Delete(ctx context.Context, id string) error {
	if err := p.begin(); err != nil {
		return err
	}
	res := p.store.Remove(ctx, id)
	return p.finish(res, func() {
		if res.Err != nil {
			p.notify(NoticeError, MsgDeleteFailed, res.Err)
			return
		}
		p.notify(NoticeSuccess, MsgDeleted, nil)
		if res.RefreshErr != nil {
			p.notify(NoticeError, MsgLoadFailed, res.RefreshErr)
		}
	})
}

// SetTab changes the active filter. It never fetches.
func (p *Page) SetTab(tab domain.Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab = tab
}

// State returns a copy of the page state with the visible subset derived
// from the snapshot and the active tab.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	tasks := p.store.Snapshot()
	return State{
		Tasks:     tasks,
		Visible:   domain.FilterByTab(tasks, p.tab),
		Loading:   p.loading,
		ModalOpen: p.modalOpen,
		Editing:   p.editing,
		ActiveTab: p.tab,
		Notices:   append([]Notice(nil), p.notices...),
	}
}

// TakeNotices returns the pending notices and clears them.
func (p *Page) TakeNotices() []Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	notices := p.notices
	p.notices = nil
	return notices
}

// Close tears the page down. In-flight results are discarded when they arrive.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.store.Close()
}

func (p *Page) begin() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.loading {
		return ErrBusy
	}
	p.loading = true
	return nil
}

// finish applies a result under the lock unless the page was closed meanwhile.
func (p *Page) finish(res Result, apply func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || res.Discarded {
		return ErrClosed
	}
	p.loading = false
	apply()
	return res.Err
}

// closeModal must be called with mu held.
func (p *Page) closeModal() {
	p.modalOpen = false
	p.editing = nil
	p.form = nil
}

// notify must be called with mu held.
func (p *Page) notify(kind NoticeKind, msg string, err error) {
	p.notices = append(p.notices, Notice{Kind: kind, Message: msg, Err: err})
}
