package taskpage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/api/apitest"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestStore_LoadReplacesSnapshot(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)

	assert.Empty(t, store.Snapshot())
	assert.False(t, store.Loaded())

	res := store.Load(context.Background())
	require.True(t, res.OK())
	assert.Equal(t, OpLoad, res.Op)
	require.Len(t, store.Snapshot(), 1)
	assert.Equal(t, "A", store.Snapshot()[0].Title)
	assert.True(t, store.Loaded())
}

func TestStore_FailedLoadKeepsSnapshot(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)
	require.True(t, store.Load(context.Background()).OK())

	fake.SetError("list", errors.NewNetworkError("list tasks", nil))
	res := store.Load(context.Background())

	assert.False(t, res.OK())
	assert.True(t, errors.IsErrorType(res.Err, errors.ErrorTypeNetwork))
	require.Len(t, store.Snapshot(), 1)
}

func TestStore_MutationsRefetch(t *testing.T) {
	ctx := context.Background()
	fake := apitest.NewFake()
	store := NewStore(fake)

	res := store.Create(ctx, domain.NewTaskInput("B"))
	require.True(t, res.OK())
	require.NoError(t, res.RefreshErr)
	require.NotNil(t, res.Task)
	id := res.Task.ID

	in := domain.NewTaskInput("B2")
	in.Status = domain.StatusCompleted
	res = store.Update(ctx, id, in)
	require.True(t, res.OK())
	assert.Equal(t, "B2", store.Snapshot()[0].Title)

	res = store.Remove(ctx, id)
	require.True(t, res.OK())
	assert.Empty(t, store.Snapshot())

	assert.Equal(t, []string{"create", "list", "update " + id, "list", "delete " + id, "list"}, fake.Calls())
}

func TestStore_FailedMutationDoesNotRefetch(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)
	require.True(t, store.Load(context.Background()).OK())

	fake.SetError("delete", errors.NewServerRejectionError("delete task", 500, "boom"))
	res := store.Remove(context.Background(), "1")

	assert.False(t, res.OK())
	assert.Equal(t, 1, fake.CallCount("list"))
	require.Len(t, store.Snapshot(), 1)
}

func TestStore_FailedRefetchAfterMutation(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)
	require.True(t, store.Load(context.Background()).OK())

	fake.SetError("list", errors.NewNetworkError("list tasks", nil))
	res := store.Remove(context.Background(), "1")

	assert.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Error(t, res.RefreshErr)
	// The previous snapshot stays until a fetch succeeds.
	require.Len(t, store.Snapshot(), 1)
}

func TestStore_CloseDiscardsResults(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)
	store.Close()

	res := store.Load(context.Background())
	assert.True(t, res.Discarded)
	assert.False(t, res.OK())
	assert.Empty(t, store.Snapshot())

	res = store.Create(context.Background(), domain.NewTaskInput("B"))
	assert.True(t, res.Discarded)
	assert.Equal(t, 1, fake.CallCount("list"))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	fake := apitest.NewFake(&domain.Task{ID: "1", Title: "A", Status: domain.StatusNotStarted})
	store := NewStore(fake)
	require.True(t, store.Load(context.Background()).OK())

	snap := store.Snapshot()
	snap[0] = nil
	assert.NotNil(t, store.Snapshot()[0])
}
