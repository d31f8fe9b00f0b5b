package taskpage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/api"
	"task-manager/internal/api/apitest"
	"task-manager/internal/client"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

func seedTasks() []*domain.Task {
	return []*domain.Task{
		{ID: "1", Title: "A", Status: domain.StatusNotStarted},
		{ID: "2", Title: "B", Status: domain.StatusCompleted},
		{ID: "3", Title: "C", Status: domain.StatusInProgress},
		{ID: "4", Title: "D", Status: domain.StatusCompleted},
	}
}

func mountedPage(t *testing.T, tasks ...*domain.Task) (*Page, *apitest.Fake) {
	t.Helper()
	fake := apitest.NewFake(tasks...)
	page := New(fake)
	require.NoError(t, page.Mount(context.Background()))
	return page, fake
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestPage_MountFetches(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)

	state := page.State()
	assert.False(t, state.Loading)
	assert.False(t, state.ModalOpen)
	assert.Equal(t, domain.TabAll, state.ActiveTab)
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(state.Visible))
	assert.Empty(t, state.Notices)
	assert.Equal(t, []string{"list"}, fake.Calls())
}

func TestPage_MountFailureLeavesListEmpty(t *testing.T) {
	fake := apitest.NewFake(seedTasks()...)
	fake.SetError("list", errors.NewSessionExpiredError("list tasks", http.StatusUnauthorized))
	page := New(fake)

	err := page.Mount(context.Background())

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeSessionExpired))
	state := page.State()
	assert.Empty(t, state.Tasks)
	assert.Empty(t, state.Visible)
	assert.False(t, state.Loading)
	require.Len(t, state.Notices, 1)
	assert.Equal(t, NoticeError, state.Notices[0].Kind)
	assert.Equal(t, MsgLoadFailed, state.Notices[0].Message)
}

func TestPage_CreateNormalizesDateAndRefetches(t *testing.T) {
	page, fake := mountedPage(t)

	form, err := page.OpenCreate()
	require.NoError(t, err)
	assert.True(t, page.State().ModalOpen)
	assert.Nil(t, page.State().Editing)

	form.SetTitle("B")
	form.SetStatus(domain.StatusInProgress)
	form.SetDueDate("2024-05-01")
	require.NoError(t, page.Submit(context.Background()))

	require.Len(t, fake.Created, 1)
	require.NotNil(t, fake.Created[0].DueDate)
	assert.Equal(t, "2024-05-01", fake.Created[0].DueDate.String())
	assert.Equal(t, domain.StatusInProgress, fake.Created[0].Status)
	assert.Equal(t, []string{"list", "create", "list"}, fake.Calls())

	state := page.State()
	assert.False(t, state.ModalOpen)
	assert.Nil(t, state.Editing)
	assert.Nil(t, page.Form())
	assert.Equal(t, []string{"B"}, titles(state.Tasks))
	require.Len(t, state.Notices, 1)
	assert.Equal(t, Notice{Kind: NoticeSuccess, Message: MsgCreated}, state.Notices[0])
}

func TestPage_CreateSendsWireDate(t *testing.T) {
	var body map[string]interface{}
	var listCalls int

	r := mux.NewRouter()
	r.HandleFunc("/tasks", func(w http.ResponseWriter, req *http.Request) {
		listCalls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}).Methods(http.MethodGet)
	r.HandleFunc("/tasks", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id":"t-1","title":"B","status":"in_progress","due_date":"2024-05-01"}`))
	}).Methods(http.MethodPost)
	srv := httptest.NewServer(r)
	defer srv.Close()

	c, err := client.New(srv.URL, staticToken("tok"))
	require.NoError(t, err)
	page := New(api.New(c))
	require.NoError(t, page.Mount(context.Background()))

	form, err := page.OpenCreate()
	require.NoError(t, err)
	form.SetTitle("B")
	form.SetStatus(domain.StatusInProgress)
	form.SetDueDate("2024-05-01")
	require.NoError(t, page.Submit(context.Background()))

	assert.Equal(t, "2024-05-01", body["due_date"])
	assert.Equal(t, "in_progress", body["status"])
	assert.Equal(t, 2, listCalls)
	assert.False(t, page.State().ModalOpen)
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func TestPage_EmptyTitleIssuesNoCall(t *testing.T) {
	page, fake := mountedPage(t)

	form, err := page.OpenCreate()
	require.NoError(t, err)
	form.SetTitle("   ")
	err = page.Submit(context.Background())

	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.NotEmpty(t, form.FieldError(validation.FieldTitle))
	assert.Equal(t, []string{"list"}, fake.Calls())
	assert.True(t, page.State().ModalOpen)
	assert.False(t, page.State().Loading)
}

func TestPage_DisplayedListIsFreshFetch(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)

	// Another client changes the collection behind our back.
	fake.SetTasks(
		&domain.Task{ID: "9", Title: "Z", Status: domain.StatusNotStarted},
		&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted},
	)

	require.NoError(t, page.Delete(context.Background(), "1"))

	assert.Equal(t, fake.Tasks(), page.State().Tasks)
	assert.Equal(t, []string{"Z"}, titles(page.State().Tasks))
}

func TestPage_EditUpdatesWholesale(t *testing.T) {
	due := domain.NewDate(2024, 6, 1)
	page, fake := mountedPage(t, &domain.Task{
		ID: "1", Title: "A", Description: "notes", Status: domain.StatusNotStarted, DueDate: &due,
	})

	form, err := page.OpenEdit(page.State().Tasks[0])
	require.NoError(t, err)
	assert.Equal(t, "A", form.Title())
	assert.Equal(t, "2024-06-01", form.DueDate())
	require.NotNil(t, page.State().Editing)
	assert.Equal(t, "1", page.State().Editing.ID)

	form.SetTitle("A2")
	form.SetDueDate("")
	require.NoError(t, page.Submit(context.Background()))

	require.Len(t, fake.Updated, 1)
	assert.Equal(t, "A2", fake.Updated[0].Title)
	assert.Equal(t, "notes", fake.Updated[0].Description)
	assert.Nil(t, fake.Updated[0].DueDate)
	assert.Equal(t, []string{"list", "update 1", "list"}, fake.Calls())

	state := page.State()
	assert.False(t, state.ModalOpen)
	assert.Equal(t, "A2", state.Tasks[0].Title)
	assert.Equal(t, MsgUpdated, state.Notices[0].Message)
}

func TestPage_FailedSubmitKeepsModalOpen(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)
	fake.SetError("create", errors.NewServerRejectionError("create task", http.StatusBadRequest, "bad"))

	form, err := page.OpenCreate()
	require.NoError(t, err)
	form.SetTitle("New")
	err = page.Submit(context.Background())

	require.Error(t, err)
	state := page.State()
	assert.True(t, state.ModalOpen)
	assert.Same(t, form, page.Form())
	assert.False(t, state.Loading)
	assert.False(t, form.Submitting())
	assert.Equal(t, "New", form.Title())
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(state.Tasks))
	require.Len(t, state.Notices, 1)
	assert.Equal(t, NoticeError, state.Notices[0].Kind)
	assert.Equal(t, MsgSaveFailed, state.Notices[0].Message)
	assert.Equal(t, 1, fake.CallCount("list"))
}

func TestPage_Delete(t *testing.T) {
	t.Run("success refetches", func(t *testing.T) {
		page, fake := mountedPage(t, seedTasks()...)

		require.NoError(t, page.Delete(context.Background(), "2"))

		assert.Equal(t, []string{"A", "C", "D"}, titles(page.State().Tasks))
		assert.Equal(t, []string{"list", "delete 2", "list"}, fake.Calls())
		assert.Equal(t, MsgDeleted, page.State().Notices[0].Message)
	})

	t.Run("not found is surfaced", func(t *testing.T) {
		page, fake := mountedPage(t, seedTasks()...)

		err := page.Delete(context.Background(), "missing")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
		assert.Equal(t, []string{"A", "B", "C", "D"}, titles(page.State().Tasks))
		assert.Equal(t, MsgDeleteFailed, page.State().Notices[0].Message)
		assert.Equal(t, 1, fake.CallCount("list"))
	})
}

func TestPage_RefetchFailureAfterMutation(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)
	fake.SetError("list", errors.NewNetworkError("list tasks", nil))

	require.NoError(t, page.Delete(context.Background(), "1"))

	notices := page.TakeNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, MsgDeleted, notices[0].Message)
	assert.Equal(t, MsgLoadFailed, notices[1].Message)
	assert.Empty(t, page.State().Notices)
	assert.Len(t, page.State().Tasks, 4)
}

func TestPage_TabFilteringIsPure(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)
	callsBefore := len(fake.Calls())

	page.SetTab(domain.TabCompleted)
	state := page.State()
	assert.Equal(t, domain.TabCompleted, state.ActiveTab)
	assert.Equal(t, []string{"B", "D"}, titles(state.Visible))
	for _, task := range state.Visible {
		assert.Equal(t, domain.StatusCompleted, task.Status)
	}

	page.SetTab(domain.TabAll)
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles(page.State().Visible))
	assert.Equal(t, page.State().Tasks, page.State().Visible)
	assert.Len(t, fake.Calls(), callsBefore)
}

func TestPage_CancelDiscardsEdits(t *testing.T) {
	page, fake := mountedPage(t, seedTasks()...)

	form, err := page.OpenEdit(page.State().Tasks[0])
	require.NoError(t, err)
	form.SetTitle("changed")
	page.Cancel()

	state := page.State()
	assert.False(t, state.ModalOpen)
	assert.Nil(t, state.Editing)
	assert.Nil(t, page.Form())
	assert.Equal(t, "A", form.Title())
	assert.Equal(t, "A", state.Tasks[0].Title)
	assert.ErrorIs(t, page.Submit(context.Background()), ErrNoForm)
	assert.Equal(t, []string{"list"}, fake.Calls())
}

func TestPage_OpenEditCopiesTask(t *testing.T) {
	page, _ := mountedPage(t, seedTasks()...)
	task := page.State().Tasks[0]

	_, err := page.OpenEdit(task)
	require.NoError(t, err)
	task.Title = "mutated"

	assert.Equal(t, "A", page.State().Editing.Title)
}

func TestPage_BusyWhileLoading(t *testing.T) {
	fake := apitest.NewFake(seedTasks()...)
	page := New(fake)
	fake.Hold()

	done := make(chan error, 1)
	go func() { done <- page.Mount(context.Background()) }()
	require.Eventually(t, func() bool { return fake.CallCount("list") == 1 }, time.Second, 5*time.Millisecond)

	assert.True(t, page.State().Loading)
	assert.ErrorIs(t, page.Delete(context.Background(), "1"), ErrBusy)
	assert.ErrorIs(t, page.Refresh(context.Background()), ErrBusy)

	// Other controls stay usable while loading.
	page.SetTab(domain.TabCompleted)
	form, err := page.OpenCreate()
	require.NoError(t, err)
	form.SetTitle("later")
	assert.ErrorIs(t, page.Submit(context.Background()), ErrBusy)
	assert.False(t, form.Submitting())

	fake.Release()
	require.NoError(t, <-done)
	assert.False(t, page.State().Loading)
	assert.Equal(t, 0, fake.CallCount("delete"))
	assert.Equal(t, []string{"B", "D"}, titles(page.State().Visible))
}

func TestPage_CloseDiscardsLateResults(t *testing.T) {
	fake := apitest.NewFake(seedTasks()...)
	page := New(fake)
	fake.Hold()

	done := make(chan error, 1)
	go func() { done <- page.Mount(context.Background()) }()
	require.Eventually(t, func() bool { return fake.CallCount("list") == 1 }, time.Second, 5*time.Millisecond)

	page.Close()
	fake.Release()

	assert.ErrorIs(t, <-done, ErrClosed)
	state := page.State()
	assert.Empty(t, state.Tasks)
	assert.Empty(t, state.Notices)

	_, err := page.OpenCreate()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, page.Delete(context.Background(), "1"), ErrClosed)
}
