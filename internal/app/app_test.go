package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/gateway/gatewaytest"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/mutation"
	"github.com/nhle/shift-handover/internal/ui/form"
	"github.com/nhle/shift-handover/internal/ui/notice"
	"github.com/nhle/shift-handover/internal/view"
)

func newTestModel(t *testing.T, seed func(f *gatewaytest.Fake)) (Model, *gatewaytest.Fake) {
	t.Helper()
	fake := gatewaytest.New()
	if seed != nil {
		seed(fake)
	}
	c := cache.New(fake)
	require.NoError(t, c.LoadAll(context.Background()))
	ctrl := mutation.New(fake, c, mutation.Options{UserName: "当直"})

	m := New(ctrl, nil, Config{UserName: "当直", DownloadDir: t.TempDir(), Backend: "test"})
	m.now = func() time.Time { return time.Date(2025, 7, 3, 9, 0, 0, 0, time.Local) }
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), fake
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	updated, next := m.Update(cmd())
	return updated.(Model), next
}

func seedTask(f *gatewaytest.Fake) {
	f.Tasks = []model.Task{{
		ID: 1,
		TaskInput: model.TaskInput{
			Title: "ホース点検", DepartmentID: "fire", PriorityID: "high", StatusID: model.StatusTaskTodo,
		},
	}}
}

func TestSectionKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	assert.Equal(t, view.SectionDashboard, m.state.Section)

	m, _ = press(t, m, "3")
	assert.Equal(t, view.SectionTasks, m.state.Section)
	m, _ = press(t, m, "4")
	assert.Equal(t, view.SectionCalendar, m.state.Section)
	m, _ = press(t, m, "2")
	assert.Equal(t, view.SectionHandovers, m.state.Section)

	m, _ = press(t, m, "?")
	assert.Equal(t, OverlayHelp, m.overlay)
	m, _ = press(t, m, "3")
	assert.Equal(t, view.SectionHandovers, m.state.Section, "section keys are ignored under the help overlay")
	m, _ = press(t, m, "esc")
	assert.Equal(t, OverlayNone, m.overlay)

	assert.Contains(t, m.View(), "申し送り")
}

func TestSearchAppliesQueryAndResetsPage(t *testing.T) {
	m, _ := newTestModel(t, seedTask)
	m, _ = press(t, m, "3")
	m.state.Tasks.Page = 3

	m, _ = press(t, m, "/")
	require.Equal(t, OverlaySearch, m.overlay)
	m, _ = press(t, m, "ホース")
	m, cmd := press(t, m, "enter")
	m, _ = run(t, m, cmd)

	assert.Equal(t, OverlayNone, m.overlay)
	assert.Equal(t, "ホース", m.state.Tasks.Query)
	assert.Equal(t, 1, m.state.Tasks.Page)
	assert.Equal(t, 1, m.tasksView().Page.Total)
}

func TestTaskFilterCycle(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, "3")

	m, _ = press(t, m, "f")
	assert.Equal(t, "general", m.state.Tasks.Department)
	m, _ = press(t, m, "p")
	assert.Equal(t, "urgent", m.state.Tasks.Priority)
}

func TestStatusChangeAppliesBeforeWrite(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "s")
	require.Equal(t, OverlayForm, m.overlay)
	require.Equal(t, form.KindStatus, m.form.Kind())

	updated, cmd := m.Update(form.SubmitMsg{
		Kind: form.KindStatus, Ref: model.TaskRef(1), StatusID: model.StatusTaskCompleted,
	})
	m = updated.(Model)

	task, ok := m.snapshot().Task(1)
	require.True(t, ok)
	assert.Equal(t, model.StatusTaskCompleted, task.StatusID)
	assert.True(t, task.Completed)
	assert.Zero(t, fake.Called("UpdateTaskStatus"), "nothing is written before the command runs")

	m, _ = run(t, m, cmd)
	assert.Equal(t, 1, fake.Called("UpdateTaskStatus"))
	assert.Equal(t, OverlayNone, m.overlay)
	assert.False(t, m.form.Active())
	assert.Equal(t, "ステータスを変更しました", m.message)
}

func TestStatusChangeRevertsOnFailure(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	fake.SetErr("UpdateTaskStatus", errors.New("offline"))
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "s")

	updated, cmd := m.Update(form.SubmitMsg{
		Kind: form.KindStatus, Ref: model.TaskRef(1), StatusID: model.StatusTaskCompleted,
	})
	m = updated.(Model)
	m, _ = run(t, m, cmd)

	task, _ := m.snapshot().Task(1)
	assert.Equal(t, model.StatusTaskTodo, task.StatusID)
	assert.False(t, task.Completed)
	assert.True(t, m.notice.Active())
}

func TestStatusRejectsWrongCategory(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "s")

	updated, cmd := m.Update(form.SubmitMsg{
		Kind: form.KindStatus, Ref: model.TaskRef(1), StatusID: model.StatusHandoverCompleted,
	})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.True(t, m.notice.Active())
	assert.False(t, m.form.Active())
	assert.Zero(t, fake.Called("UpdateTaskStatus"))
}

func TestFailedSubmitReopensForm(t *testing.T) {
	m, fake := newTestModel(t, nil)
	fake.SetErr("InsertTask", errors.New("offline"))
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "n")
	require.Equal(t, OverlayForm, m.overlay)

	updated, cmd := m.Update(form.SubmitMsg{
		Kind: form.KindTask,
		Task: model.TaskInput{Title: "訓練計画", DepartmentID: "fire", PriorityID: "medium"},
	})
	m = updated.(Model)
	m, _ = run(t, m, cmd)

	assert.True(t, m.notice.Active())
	assert.True(t, m.reopenForm)
	assert.Equal(t, OverlayForm, m.overlay)
	assert.Empty(t, m.snapshot().Tasks)

	updated, _ = m.Update(notice.DismissedMsg{})
	m = updated.(Model)
	assert.False(t, m.reopenForm)
	assert.True(t, m.form.Active())
	assert.False(t, m.form.Pending())
}

func TestSubmitCreatesTask(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "n")

	updated, cmd := m.Update(form.SubmitMsg{
		Kind: form.KindTask,
		Task: model.TaskInput{Title: "訓練計画", DepartmentID: "fire", PriorityID: "medium"},
	})
	m = updated.(Model)
	m, _ = run(t, m, cmd)

	require.Len(t, m.snapshot().Tasks, 1)
	assert.Equal(t, model.StatusTaskTodo, m.snapshot().Tasks[0].StatusID)
	assert.Equal(t, OverlayNone, m.overlay)
	assert.Equal(t, "タスクを登録しました", m.message)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	m, _ = press(t, m, "3")

	m, _ = press(t, m, "x")
	require.True(t, m.notice.Active())
	assert.Zero(t, fake.Called("DeleteTask"))

	m, cmd := press(t, m, "n")
	m, _ = run(t, m, cmd)
	assert.Len(t, m.snapshot().Tasks, 1)

	m, _ = press(t, m, "x")
	m, cmd = press(t, m, "y")
	m, cmd = run(t, m, cmd)
	m, _ = run(t, m, cmd)

	assert.Equal(t, 1, fake.Called("DeleteTask"))
	assert.Empty(t, m.snapshot().Tasks)
}

func TestDetailClosesWhenItemDisappears(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	m, _ = press(t, m, "3")
	m, _ = press(t, m, "enter")
	require.Equal(t, OverlayDetail, m.overlay)

	fake.Tasks = nil
	require.NoError(t, m.cache.LoadAll(context.Background()))
	updated, _ := m.Update(writeResultMsg{op: "reload"})
	m = updated.(Model)

	assert.Equal(t, OverlayNone, m.overlay)
	_, open := m.detail.Ref()
	assert.False(t, open)
}

func TestManualRefreshFailureStaysInStatusBar(t *testing.T) {
	m, fake := newTestModel(t, seedTask)
	fake.SetErr("ListTasks", errors.New("offline"))

	m, cmd := press(t, m, "r")
	assert.Equal(t, "更新中...", m.message)
	m, _ = run(t, m, cmd)

	assert.False(t, m.notice.Active())
	assert.Error(t, m.refreshErr)
	assert.Contains(t, m.message, "offline")
	assert.Len(t, m.snapshot().Tasks, 1, "stale rows are kept")

	fake.SetErr("ListTasks", nil)
	m, cmd = press(t, m, "r")
	m, _ = run(t, m, cmd)
	assert.NoError(t, m.refreshErr)
	assert.Empty(t, m.message)
}
