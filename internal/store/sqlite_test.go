package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/testutil"
)

func TestReferenceDataIsMigrated(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	depts, err := s.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDepartments(), depts)

	prios, err := s.ListPriorities(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPriorities(), prios)

	statuses, err := s.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStatuses(), statuses)
}

func TestScheduleCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	later, err := s.InsertSchedule(ctx, model.ScheduleInput{
		Title: "防火訓練", DepartmentID: "fire", Date: "2025-07-04", Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultScheduleDuration, later.Duration)
	assert.False(t, later.CreatedAt.IsZero())

	earlier, err := s.InsertSchedule(ctx, model.ScheduleInput{
		Title: "月次会議", DepartmentID: "general", Date: "2025-07-03", Time: "09:00", Duration: 120,
	})
	require.NoError(t, err)

	rows, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, earlier.ID, rows[0].ID)
	assert.Equal(t, "2025-07-03", rows[0].Date)

	updated, err := s.UpdateSchedule(ctx, later.ID, model.ScheduleInput{
		Title: "防火訓練", DepartmentID: "fire", Date: "2025-07-02", Time: "10:00", Duration: 90,
	})
	require.NoError(t, err)
	assert.Equal(t, 90, updated.Duration)

	rows, err = s.ListSchedules(ctx)
	require.NoError(t, err)
	assert.Equal(t, later.ID, rows[0].ID)

	require.NoError(t, s.DeleteSchedule(ctx, later.ID))
	assert.ErrorIs(t, s.DeleteSchedule(ctx, later.ID), gateway.ErrNotFound)
}

func TestScheduleRejectsBadDate(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.InsertSchedule(context.Background(), model.ScheduleInput{Title: "x", Date: "07/03/2025"})
	assert.Error(t, err)
}

func TestHandoversNewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.InsertHandover(ctx, model.HandoverInput{DepartmentID: "fire", Title: "a", PriorityID: "low", StatusID: model.StatusHandoverPending})
	require.NoError(t, err)
	second, err := s.InsertHandover(ctx, model.HandoverInput{DepartmentID: "fire", Title: "b", PriorityID: "low", StatusID: model.StatusHandoverPending})
	require.NoError(t, err)

	rows, err := s.ListHandovers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)

	require.NoError(t, s.UpdateHandoverStatus(ctx, first.ID, model.StatusHandoverCompleted))
	rows, err = s.ListHandovers(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusHandoverCompleted, rows[1].StatusID)

	assert.ErrorIs(t, s.UpdateHandoverStatus(ctx, 999, model.StatusHandoverCompleted), gateway.ErrNotFound)
}

func TestTasksByDueDateUndatedLast(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, due := range []string{"", "2025-07-10", "2025-07-04"} {
		_, err := s.InsertTask(ctx, model.TaskInput{Title: "t" + due, DepartmentID: "general", PriorityID: "low", StatusID: model.StatusTaskTodo, DueDate: due})
		require.NoError(t, err)
	}

	rows, err := s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-07-04", rows[0].DueDate)
	assert.Equal(t, "2025-07-10", rows[1].DueDate)
	assert.Equal(t, "", rows[2].DueDate)
}

func TestTaskStatusUpdateStoresCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.InsertTask(ctx, model.TaskInput{Title: "t", DepartmentID: "general", PriorityID: "low", StatusID: model.StatusTaskTodo})
	require.NoError(t, err)
	assert.False(t, task.Completed)

	require.NoError(t, s.UpdateTaskStatus(ctx, task.ID, model.StatusTaskCompleted, true))

	rows, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTaskCompleted, rows[0].StatusID)
	assert.True(t, rows[0].Completed)
}

func TestCommentsAreKeptAfterOwnerDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	task, err := s.InsertTask(ctx, model.TaskInput{Title: "t", DepartmentID: "general", PriorityID: "low", StatusID: model.StatusTaskTodo})
	require.NoError(t, err)

	c, err := s.InsertComment(ctx, model.CommentInput{ItemType: model.KindTask, ItemID: task.ID, AuthorName: "tanaka", Content: "確認済み"})
	require.NoError(t, err)
	assert.Equal(t, model.TaskRef(task.ID), c.Ref())

	require.NoError(t, s.DeleteTask(ctx, task.ID))

	comments, err := s.ListComments(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "確認済み", comments[0].Content)
}

func TestCommentsRejectScheduleOwner(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.InsertComment(context.Background(), model.CommentInput{ItemType: model.KindSchedule, ItemID: 1, Content: "x"})
	assert.Error(t, err)
}

func TestBlobLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	path := model.StoragePath(model.TaskRef(1), time.UnixMilli(1000), "a.txt")
	require.NoError(t, s.Upload(ctx, path, []byte("hello"), "text/plain"))
	assert.Error(t, s.Upload(ctx, path, []byte("again"), "text/plain"))

	data, err := s.Download(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	link, err := s.CreateSignedURL(ctx, path, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, link, "local://blobs/")
	assert.Contains(t, link, "expires=")

	require.NoError(t, s.Remove(ctx, path, "missing/path"))
	_, err = s.Download(ctx, path)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
	_, err = s.CreateSignedURL(ctx, path, time.Hour)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestAttachmentRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, err := s.InsertAttachment(ctx, model.AttachmentInput{
		ItemType: model.KindSchedule, ItemID: 3, FileName: "map.png",
		StoragePath: "schedule/3/1_map.png", SizeBytes: 42, MimeType: "image/png", UploadedBy: "sato",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ScheduleRef(3), a.Ref())

	rows, err := s.ListAttachments(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].SizeBytes)

	require.NoError(t, s.DeleteAttachment(ctx, a.ID))
	assert.ErrorIs(t, s.DeleteAttachment(ctx, a.ID), gateway.ErrNotFound)
}

func TestSeedOnlyFillsEmptyDatabase(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	today := time.Date(2025, 7, 3, 12, 0, 0, 0, time.Local)

	seeded, err := s.Seed(ctx, today)
	require.NoError(t, err)
	assert.True(t, seeded)

	schedules, err := s.ListSchedules(ctx)
	require.NoError(t, err)
	require.Len(t, schedules, 4)
	assert.Equal(t, "2025-07-03", schedules[0].Date)
	assert.Equal(t, "2025-07-04", schedules[3].Date)

	handovers, err := s.ListHandovers(ctx)
	require.NoError(t, err)
	require.Len(t, handovers, 3)
	assert.Equal(t, "消防設備確認", handovers[0].Title)

	again, err := s.Seed(ctx, today)
	require.NoError(t, err)
	assert.False(t, again)
}
