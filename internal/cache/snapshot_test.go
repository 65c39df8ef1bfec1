package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/shift-handover/internal/model"
)

func defaultSnapshot() Snapshot {
	return Snapshot{
		Departments: model.DefaultDepartments(),
		Priorities:  model.DefaultPriorities(),
		Statuses:    model.DefaultStatuses(),
	}
}

func TestDanglingReferencesShowRawID(t *testing.T) {
	snap := defaultSnapshot()

	assert.Equal(t, "警防係", snap.DepartmentName("fire"))
	assert.Equal(t, "#E74C3C", snap.DepartmentColor("fire"))
	assert.Equal(t, "rescue", snap.DepartmentName("rescue"))
	assert.Equal(t, model.FallbackColor, snap.DepartmentColor("rescue"))
	assert.Equal(t, "critical", snap.PriorityName("critical"))
	assert.Equal(t, model.FallbackColor, snap.PriorityColor("critical"))
	assert.Equal(t, "closed", snap.StatusName("closed"))
	assert.Equal(t, model.FallbackColor, snap.StatusColor("closed"))
}

func TestStatusesForPartitionsByCategory(t *testing.T) {
	snap := defaultSnapshot()

	tasks := snap.StatusesFor(model.CategoryTask)
	assert.Len(t, tasks, 3)
	for _, st := range tasks {
		assert.Equal(t, model.CategoryTask, st.Category)
	}

	first, ok := snap.DefaultStatus(model.CategoryHandover)
	assert.True(t, ok)
	assert.Equal(t, model.StatusHandoverPending, first.ID)
}

func TestCommentsForMatchesKindAndID(t *testing.T) {
	snap := Snapshot{Comments: []model.Comment{
		{ID: 1, CommentInput: model.CommentInput{ItemType: model.KindTask, ItemID: 5}},
		{ID: 2, CommentInput: model.CommentInput{ItemType: model.KindHandover, ItemID: 5}},
		{ID: 3, CommentInput: model.CommentInput{ItemType: model.KindTask, ItemID: 6}},
		{ID: 4, CommentInput: model.CommentInput{ItemType: model.KindTask, ItemID: 5}},
	}}

	got := snap.CommentsFor(model.TaskRef(5))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
	assert.Empty(t, snap.CommentsFor(model.ScheduleRef(5)))
}

func TestAttachmentsForMatchesKindAndID(t *testing.T) {
	snap := Snapshot{Attachments: []model.Attachment{
		{ID: 1, AttachmentInput: model.AttachmentInput{ItemType: model.KindSchedule, ItemID: 2}},
		{ID: 2, AttachmentInput: model.AttachmentInput{ItemType: model.KindTask, ItemID: 2}},
	}}

	got := snap.AttachmentsFor(model.ScheduleRef(2))
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestExists(t *testing.T) {
	snap := Snapshot{
		Tasks:     []model.Task{{ID: 1}},
		Schedules: []model.Schedule{{ID: 2}},
	}
	assert.True(t, snap.Exists(model.TaskRef(1)))
	assert.True(t, snap.Exists(model.ScheduleRef(2)))
	assert.False(t, snap.Exists(model.HandoverRef(1)))
}
