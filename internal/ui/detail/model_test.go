package detail

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
)

var at = time.Date(2025, 7, 3, 8, 0, 0, 0, time.UTC)

func testSnapshot() cache.Snapshot {
	return cache.Snapshot{
		Departments: model.DefaultDepartments(),
		Priorities:  model.DefaultPriorities(),
		Statuses:    model.DefaultStatuses(),
		Tasks: []model.Task{{ID: 1, TaskInput: model.TaskInput{
			Title: "消火栓点検", DepartmentID: "fire", PriorityID: "urgent",
			StatusID: model.StatusTaskTodo, Description: "**3号**消火栓",
		}, CreatedAt: at}},
		Schedules: []model.Schedule{{ID: 2, ScheduleInput: model.ScheduleInput{
			Title: "防火訓練", DepartmentID: "fire", Date: "2025-07-04", Time: "10:00:00", Duration: 60,
		}}},
		Comments: []model.Comment{
			{ID: 10, CommentInput: model.CommentInput{ItemType: model.KindTask, ItemID: 1, AuthorName: "佐藤", Content: "了解"}, CreatedAt: at},
			{ID: 11, CommentInput: model.CommentInput{ItemType: model.KindHandover, ItemID: 1, Content: "other"}, CreatedAt: at},
		},
		Attachments: []model.Attachment{
			{ID: 20, AttachmentInput: model.AttachmentInput{ItemType: model.KindTask, ItemID: 1, FileName: "map.pdf", SizeBytes: 2048}, CreatedAt: at},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResolveTask(t *testing.T) {
	it, ok := Resolve(testSnapshot(), model.TaskRef(1))
	require.True(t, ok)
	assert.Equal(t, "消火栓点検", it.Title)
	require.Len(t, it.Badges, 3)
	assert.Equal(t, "緊急", it.Badges[1].Text)
	require.Len(t, it.Comments, 1)
	assert.Equal(t, int64(10), it.Comments[0].ID)
	require.Len(t, it.Attachments, 1)

	entries := it.Entries()
	require.Len(t, entries, 2)
	assert.NotNil(t, entries[0].Attachment)
	assert.NotNil(t, entries[1].Comment)
}

func TestResolveScheduleHasNoComments(t *testing.T) {
	it, ok := Resolve(testSnapshot(), model.ScheduleRef(2))
	require.True(t, ok)
	assert.Empty(t, it.Comments)
	assert.Equal(t, Field{"日時", "2025-07-04 10:00"}, it.Fields[0])

	_, ok = Resolve(testSnapshot(), model.HandoverRef(99))
	assert.False(t, ok)
}

func TestEntryActions(t *testing.T) {
	m := New(keys.DefaultKeyMap(), MarkdownStyle("plain"), 80, 30)
	it, _ := Resolve(testSnapshot(), model.TaskRef(1))
	m.SetItem(it)

	_, cmd := m.Update(keyMsg("u"))
	require.NotNil(t, cmd)
	msg := cmd().(ActionMsg)
	assert.Equal(t, ActionURL, msg.Action)
	assert.Equal(t, int64(20), msg.Entry.Attachment.ID)

	m, _ = m.Update(keyMsg("j"))
	_, cmd = m.Update(keyMsg("d"))
	assert.Nil(t, cmd, "download needs an attachment")

	_, cmd = m.Update(keyMsg("x"))
	msg = cmd().(ActionMsg)
	assert.Equal(t, ActionDeleteEntry, msg.Action)
	assert.Equal(t, int64(10), msg.Entry.Comment.ID)

	_, cmd = m.Update(keyMsg("esc"))
	assert.Equal(t, BackMsg{}, cmd())
}

func TestScheduleRejectsCommentAndStatus(t *testing.T) {
	m := New(keys.DefaultKeyMap(), MarkdownStyle("plain"), 80, 30)
	it, _ := Resolve(testSnapshot(), model.ScheduleRef(2))
	m.SetItem(it)

	_, cmd := m.Update(keyMsg("c"))
	assert.Nil(t, cmd)
	_, cmd = m.Update(keyMsg("s"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(keyMsg("x"))
	assert.Equal(t, ActionMsg{Action: ActionDelete, Ref: model.ScheduleRef(2)}, cmd())
}

func TestViewShowsHumanSizes(t *testing.T) {
	m := New(keys.DefaultKeyMap(), MarkdownStyle("plain"), 80, 40)
	it, _ := Resolve(testSnapshot(), model.TaskRef(1))
	m.SetItem(it)

	out := m.renderContent()
	assert.Contains(t, out, "map.pdf")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "了解")
}
