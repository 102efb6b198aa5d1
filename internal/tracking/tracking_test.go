package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart_events_app/internal/app"
	"smart_events_app/internal/store"
)

func newTestService() (*Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewService(st), st
}

func TestUpdateTaskStatusCreatesAndRecomputes(t *testing.T) {
	svc, _ := newTestService()

	ts, err := svc.UpdateTaskStatus("t1", "e1", app.StatusPending, "")
	require.NoError(t, err)
	assert.Equal(t, "t1", ts.TaskID)
	assert.Equal(t, "e1", ts.EventID)
	assert.Equal(t, app.StatusPending, ts.Status)

	status, err := svc.GetEventStatus("e1")
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalTasks)
	assert.Equal(t, 1, status.PendingTasks)
	assert.Equal(t, 0.0, status.ProgressPercentage)
	assert.Equal(t, app.EventPlanning, status.Status)
}

func TestUpdateTaskStatusUpsertKeepsEventID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateTaskStatus("t1", "e1", app.StatusPending, "first")
	require.NoError(t, err)

	// Second write for the same task must update in place: the original
	// eventId wins even when the caller sends a different one.
	ts, err := svc.UpdateTaskStatus("t1", "e2", app.StatusInProgress, "second")
	require.NoError(t, err)
	assert.Equal(t, "e1", ts.EventID)
	assert.Equal(t, app.StatusInProgress, ts.Status)
	assert.Equal(t, "second", ts.Notes)

	tasks, err := svc.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	status, err := svc.GetEventStatus("e1")
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalTasks)
	assert.Equal(t, 1, status.InProgressTasks)
	assert.Equal(t, 0, status.PendingTasks)
	assert.Equal(t, app.EventActive, status.Status)
}

func TestCompleteTask(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateTaskStatus("t1", "e1", app.StatusPending, "")
	require.NoError(t, err)
	_, err = svc.UpdateTaskStatus("t2", "e1", app.StatusPending, "")
	require.NoError(t, err)

	ts, err := svc.CompleteTask("t1")
	require.NoError(t, err)
	assert.Equal(t, app.StatusCompleted, ts.Status)

	status, err := svc.GetEventStatus("e1")
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalTasks)
	assert.Equal(t, 1, status.CompletedTasks)
	assert.Equal(t, 50.0, status.ProgressPercentage)
	assert.Equal(t, app.EventActive, status.Status)
}

func TestAllTasksCompleted(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateTaskStatus("t1", "e1", app.StatusCompleted, "")
	require.NoError(t, err)
	_, err = svc.UpdateTaskStatus("t2", "e1", app.StatusCompleted, "")
	require.NoError(t, err)

	status, err := svc.GetEventStatus("e1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, status.ProgressPercentage)
	assert.Equal(t, app.EventCompleted, status.Status)
}

func TestUnknownStatusCountsTowardTotalOnly(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateTaskStatus("t1", "e1", app.StatusCompleted, "")
	require.NoError(t, err)
	_, err = svc.UpdateTaskStatus("t2", "e1", "on-hold", "")
	require.NoError(t, err)

	status, err := svc.GetEventStatus("e1")
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalTasks)
	assert.Equal(t, 1, status.CompletedTasks)
	assert.Equal(t, 0, status.PendingTasks+status.InProgressTasks+status.BlockedTasks)
	assert.Equal(t, 50.0, status.ProgressPercentage)
}

func TestGetEventStatusUnknownEventPersistsZeroAggregate(t *testing.T) {
	svc, st := newTestService()

	status, err := svc.GetEventStatus("ghost")
	require.NoError(t, err)
	assert.Equal(t, 0, status.TotalTasks)
	assert.Equal(t, 0.0, status.ProgressPercentage)
	assert.Equal(t, app.EventPlanning, status.Status)

	// The zeroed aggregate is written, not just returned.
	rec, err := st.FindByKey(app.CollectionEventProgress, "eventId", "ghost")
	require.NoError(t, err)
	require.NotNil(t, rec)
}

func TestGetTaskStatusNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetTaskStatus("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CompleteTask("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateTaskStatus("t1", "e1", app.StatusBlocked, "")
	require.NoError(t, err)

	first, err := svc.RecomputeProgress("e1")
	require.NoError(t, err)
	second, err := svc.RecomputeProgress("e1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, second.BlockedTasks)
}
