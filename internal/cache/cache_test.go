package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/gateway/gatewaytest"
	"github.com/nhle/shift-handover/internal/model"
)

func handover(id int64, dept string, at time.Time) model.Handover {
	return model.Handover{
		ID:            id,
		HandoverInput: model.HandoverInput{DepartmentID: dept, Title: "h", PriorityID: "low", StatusID: model.StatusHandoverPending},
		CreatedAt:     at,
	}
}

func TestLoadMirrorsGatewayOrder(t *testing.T) {
	fake := gatewaytest.New()
	base := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	fake.Handovers = []model.Handover{
		handover(1, "fire", base),
		handover(2, "fire", base.Add(2*time.Hour)),
		handover(3, "general", base.Add(time.Hour)),
	}
	c := New(fake)

	require.NoError(t, c.LoadHandovers(context.Background()))

	want, err := fake.ListHandovers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, c.Snapshot().Handovers)
}

func TestFailedLoadKeepsStaleRows(t *testing.T) {
	fake := gatewaytest.New()
	fake.Tasks = []model.Task{{ID: 1, TaskInput: model.TaskInput{Title: "a"}}}
	c := New(fake)
	require.NoError(t, c.LoadTasks(context.Background()))

	fake.Tasks = nil
	fake.SetErr("ListTasks", errors.New("offline"))

	err := c.LoadTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading tasks")
	require.Len(t, c.Snapshot().Tasks, 1)
	assert.Equal(t, "a", c.Snapshot().Tasks[0].Title)
}

func TestReferenceDataFallsBackWhenEmptyAndFailing(t *testing.T) {
	fake := gatewaytest.New()
	fake.SetErr("ListDepartments", errors.New("offline"))
	fake.SetErr("ListPriorities", errors.New("offline"))
	fake.SetErr("ListStatuses", errors.New("offline"))
	c := New(fake)

	err := c.LoadAll(context.Background())
	require.Error(t, err)

	snap := c.Snapshot()
	assert.Equal(t, model.DefaultDepartments(), snap.Departments)
	assert.Equal(t, model.DefaultPriorities(), snap.Priorities)
	assert.Equal(t, model.DefaultStatuses(), snap.Statuses)
}

func TestReferenceDataKeepsLoadedRowsOnFailure(t *testing.T) {
	fake := gatewaytest.New()
	fake.Departments = []model.Department{{ID: "hq", Name: "本部", Color: "#000000"}}
	c := New(fake)
	require.NoError(t, c.LoadDepartments(context.Background()))

	fake.SetErr("ListDepartments", errors.New("offline"))
	require.Error(t, c.LoadDepartments(context.Background()))

	assert.Equal(t, fake.Departments, c.Snapshot().Departments)
}

func TestEmptyStatusesFallBack(t *testing.T) {
	fake := gatewaytest.New()
	fake.Statuses = nil
	fake.Departments = nil
	c := New(fake)

	require.NoError(t, c.LoadStatuses(context.Background()))
	require.NoError(t, c.LoadDepartments(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, model.DefaultStatuses(), snap.Statuses)
	assert.Empty(t, snap.Departments)
}

func TestLoadAllJoinsErrorsAndContinues(t *testing.T) {
	fake := gatewaytest.New()
	fake.Schedules = []model.Schedule{{ID: 1, ScheduleInput: model.ScheduleInput{Title: "s", Date: "2025-07-03"}}}
	fake.SetErr("ListComments", errors.New("comments down"))
	fake.SetErr("ListTasks", errors.New("tasks down"))
	c := New(fake)

	err := c.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comments down")
	assert.Contains(t, err.Error(), "tasks down")
	assert.Len(t, c.Snapshot().Schedules, 1)
	assert.Equal(t, 1, fake.Called("ListAttachments"))
}

func TestLoadUnknownCollection(t *testing.T) {
	c := New(gatewaytest.New())
	assert.Error(t, c.Load(context.Background(), "projects"))
}

func TestPatchTaskStatus(t *testing.T) {
	fake := gatewaytest.New()
	fake.Tasks = []model.Task{{ID: 4, TaskInput: model.TaskInput{StatusID: model.StatusTaskTodo}}}
	c := New(fake)
	require.NoError(t, c.LoadTasks(context.Background()))

	prev, prevDone, ok := c.PatchTaskStatus(4, model.StatusTaskCompleted, true)
	require.True(t, ok)
	assert.Equal(t, model.StatusTaskTodo, prev)
	assert.False(t, prevDone)

	task, _ := c.Snapshot().Task(4)
	assert.Equal(t, model.StatusTaskCompleted, task.StatusID)
	assert.True(t, task.Completed)

	// The gateway copy is untouched until a write happens.
	assert.Equal(t, model.StatusTaskTodo, fake.Tasks[0].StatusID)

	_, _, ok = c.PatchTaskStatus(99, model.StatusTaskCompleted, true)
	assert.False(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	fake := gatewaytest.New()
	fake.Tasks = []model.Task{{ID: 1, TaskInput: model.TaskInput{Title: "a"}}}
	c := New(fake)
	require.NoError(t, c.LoadTasks(context.Background()))

	snap := c.Snapshot()
	snap.Tasks[0].Title = "mutated"

	assert.Equal(t, "a", c.Snapshot().Tasks[0].Title)
}
