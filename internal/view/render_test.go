package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/model"
)

var base = time.Date(2025, 7, 3, 8, 0, 0, 0, time.UTC)

func snapshot() cache.Snapshot {
	return cache.Snapshot{
		Departments: model.DefaultDepartments(),
		Priorities:  model.DefaultPriorities(),
		Statuses:    model.DefaultStatuses(),
	}
}

func newHandover(id int64, dept, title, desc string, at time.Time) model.Handover {
	return model.Handover{
		ID: id,
		HandoverInput: model.HandoverInput{
			DepartmentID: dept, Title: title, Description: desc,
			PriorityID: "medium", StatusID: model.StatusHandoverPending,
		},
		CreatedAt: at,
	}
}

func newTask(id int64, dept, prio, title, desc string, at time.Time) model.Task {
	return model.Task{
		ID: id,
		TaskInput: model.TaskInput{
			Title: title, DepartmentID: dept, Description: desc,
			PriorityID: prio, StatusID: model.StatusTaskTodo,
		},
		CreatedAt: at,
	}
}

func TestDashboardMatchesExactDates(t *testing.T) {
	snap := snapshot()
	snap.Schedules = []model.Schedule{
		{ID: 1, ScheduleInput: model.ScheduleInput{Title: "月次会議", DepartmentID: "general", Date: "2025-07-03", Time: "09:00:00"}},
		{ID: 2, ScheduleInput: model.ScheduleInput{Title: "防火訓練", DepartmentID: "fire", Date: "2025-07-04", Time: "10:00"}},
		{ID: 3, ScheduleInput: model.ScheduleInput{Title: "別日", DepartmentID: "fire", Date: "2025-07-05", Time: "10:00"}},
		{ID: 4, ScheduleInput: model.ScheduleInput{Title: "未知", DepartmentID: "hq", Date: "2025-07-03", Time: "15:00"}},
	}

	now := time.Date(2025, 7, 3, 23, 30, 0, 0, time.Local)
	d := Dashboard(snap, now)

	assert.Equal(t, "2025-07-03", d.Today.Date)
	assert.Equal(t, "2025-07-04", d.Tomorrow.Date)
	require.Len(t, d.Today.Schedules, 2)
	assert.Equal(t, "09:00", d.Today.Schedules[0].Time)
	assert.Equal(t, "庶務係", d.Today.Schedules[0].DepartmentName)
	assert.Equal(t, "hq", d.Today.Schedules[1].DepartmentName)
	assert.Equal(t, model.FallbackColor, d.Today.Schedules[1].DepartmentColor)
	require.Len(t, d.Tomorrow.Schedules, 1)
	assert.Equal(t, "防火訓練", d.Tomorrow.Schedules[0].Title)
}

func TestHandoverTabVisibility(t *testing.T) {
	snap := snapshot()
	snap.Handovers = []model.Handover{
		newHandover(1, "general", "書類確認", "", base),
		newHandover(2, "fire", "設備確認", "", base.Add(time.Hour)),
	}
	snap.Handovers[1].PriorityID = "urgent"
	st := HandoverState{Page: 1}

	st.SelectDepartment("fire")
	v := Handovers(snap, st, DefaultPageSize)
	require.Len(t, v.Page.Items, 1)
	assert.Equal(t, "設備確認", v.Page.Items[0].Title)
	assert.Equal(t, "緊急", v.Page.Items[0].PriorityName)

	st.SelectDepartment("general")
	v = Handovers(snap, st, DefaultPageSize)
	require.Len(t, v.Page.Items, 1)
	assert.Equal(t, "書類確認", v.Page.Items[0].Title)
	assert.Len(t, snap.Handovers, 2)

	st.SelectDepartment("fire")
	v = Handovers(snap, st, DefaultPageSize)
	require.Len(t, v.Page.Items, 1)
	assert.Equal(t, int64(2), v.Page.Items[0].ID)
}

func TestHandoverTabsExactlyOneActive(t *testing.T) {
	snap := snapshot()

	for _, requested := range []string{"", "prevention", "missing"} {
		v := Handovers(snap, HandoverState{Department: requested, Page: 1}, DefaultPageSize)
		active := 0
		for _, tab := range v.Tabs {
			if tab.Active {
				active++
			}
		}
		assert.Equal(t, 1, active, "requested %q", requested)
	}

	v := Handovers(snap, HandoverState{Page: 1}, DefaultPageSize)
	assert.Equal(t, "general", v.Active)
	assert.True(t, v.Tabs[0].Active)
}

func TestHandoversSearchAndOrder(t *testing.T) {
	snap := snapshot()
	snap.Handovers = []model.Handover{
		newHandover(1, "fire", "Pump check", "", base),
		newHandover(2, "fire", "書類", "PUMP pressure low", base.Add(2*time.Hour)),
		newHandover(3, "fire", "other", "", base.Add(time.Hour)),
	}

	v := Handovers(snap, HandoverState{Department: "fire", Query: "pump", Page: 1}, DefaultPageSize)
	require.Len(t, v.Page.Items, 2)
	assert.Equal(t, int64(2), v.Page.Items[0].ID)
	assert.Equal(t, int64(1), v.Page.Items[1].ID)
	assert.Len(t, v.Statuses, 3)
}

func TestHandoversPaginate(t *testing.T) {
	snap := snapshot()
	for i := 0; i < 120; i++ {
		snap.Handovers = append(snap.Handovers,
			newHandover(int64(i+1), "fire", fmt.Sprintf("h%d", i), "", base.Add(time.Duration(i)*time.Minute)))
	}

	v := Handovers(snap, HandoverState{Department: "fire", Page: 3}, DefaultPageSize)
	assert.Equal(t, 3, v.Page.TotalPages)
	assert.Len(t, v.Page.Items, 20)
	assert.Equal(t, int64(20), v.Page.Items[0].ID)
}

func TestFilterTasksIsIdempotentAndCombined(t *testing.T) {
	tasks := []model.Task{
		newTask(1, "fire", "urgent", "緊急設備修理", "", base),
		newTask(2, "fire", "low", "訓練", "緊急ではない", base.Add(time.Hour)),
		newTask(3, "general", "urgent", "緊急", "", base.Add(2*time.Hour)),
		newTask(4, "fire", "urgent", "予算", "", base.Add(3*time.Hour)),
	}

	once := FilterTasks(tasks, "fire", "urgent", "緊急")
	twice := FilterTasks(once, "fire", "urgent", "緊急")
	assert.Equal(t, once, twice)
	require.Len(t, once, 1)
	assert.Equal(t, int64(1), once[0].ID)

	all := FilterTasks(tasks, "", "", "")
	require.Len(t, all, 4)
	assert.Equal(t, int64(4), all[0].ID)
}

func TestTaskSearchResetsPage(t *testing.T) {
	snap := snapshot()
	snap.Tasks = []model.Task{
		newTask(1, "fire", "urgent", "緊急設備修理", "", base),
		newTask(2, "general", "low", "Budget", "URGENT 緊急 review", base.Add(time.Hour)),
		newTask(3, "general", "low", "予算資料作成", "", base.Add(2*time.Hour)),
	}

	st := TaskState{Page: 4}
	st.SetQuery("緊急")
	assert.Equal(t, 1, st.Page)

	v := Tasks(snap, st, DefaultPageSize)
	require.Len(t, v.Page.Items, 2)
	assert.Equal(t, int64(2), v.Page.Items[0].ID)
	assert.Equal(t, int64(1), v.Page.Items[1].ID)

	st.SetQuery("urgent")
	v = Tasks(snap, st, DefaultPageSize)
	require.Len(t, v.Page.Items, 1)
	assert.Equal(t, int64(2), v.Page.Items[0].ID)
}

func TestTaskRowsOfferTaskStatusesOnly(t *testing.T) {
	snap := snapshot()
	snap.Tasks = []model.Task{newTask(1, "fire", "urgent", "t", "", base)}

	v := Tasks(snap, TaskState{Page: 1}, DefaultPageSize)
	require.Len(t, v.Statuses, 3)
	for _, st := range v.Statuses {
		assert.Equal(t, model.CategoryTask, st.Category)
	}
	assert.Equal(t, "未着手", v.Page.Items[0].StatusName)
}

func TestTaskFilterSettersResetPage(t *testing.T) {
	st := TaskState{Page: 3}
	st.SetDepartment("fire")
	assert.Equal(t, 1, st.Page)

	st.Page = 2
	st.SetPriority("urgent")
	assert.Equal(t, 1, st.Page)

	h := HandoverState{Page: 5}
	h.SetQuery("x")
	assert.Equal(t, 1, h.Page)
}

func TestCalendarGridWednesdayStart(t *testing.T) {
	// October 2025 starts on a Wednesday.
	v := Calendar(snapshot(), CalendarState{Year: 2025, Month: time.October}, base)

	require.Len(t, v.Cells, CalendarCells)
	for i := 0; i < 3; i++ {
		assert.False(t, v.Cells[i].InMonth, "cell %d", i)
	}
	assert.Equal(t, "2025-09-28", v.Cells[0].Date)
	assert.True(t, v.Cells[3].InMonth)
	assert.Equal(t, 1, v.Cells[3].Day)
	assert.Equal(t, "2025-10-01", v.Cells[3].Date)
	assert.False(t, v.Cells[41].InMonth)
	assert.Len(t, v.Legend, 5)
}

func TestCalendarAlwaysFortyTwoCells(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		v := Calendar(snapshot(), CalendarState{Year: 2026, Month: m}, base)
		assert.Len(t, v.Cells, CalendarCells)
		assert.Equal(t, time.Sunday, mustParse(t, v.Cells[0].Date).Weekday())
	}
}

func TestCalendarMarkersPerDepartment(t *testing.T) {
	snap := snapshot()
	snap.Schedules = []model.Schedule{
		{ID: 1, ScheduleInput: model.ScheduleInput{DepartmentID: "fire", Date: "2025-07-03"}},
		{ID: 2, ScheduleInput: model.ScheduleInput{DepartmentID: "fire", Date: "2025-07-03"}},
		{ID: 3, ScheduleInput: model.ScheduleInput{DepartmentID: "general", Date: "2025-07-03"}},
	}

	v := Calendar(snap, CalendarState{Year: 2025, Month: time.July}, base)
	var cell CalendarCell
	for _, c := range v.Cells {
		if c.Date == "2025-07-03" {
			cell = c
		}
	}
	assert.True(t, cell.Today)
	assert.Len(t, cell.Schedules, 3)
	require.Len(t, cell.Markers, 2)
	assert.Equal(t, "fire", cell.Markers[0].DepartmentID)
	assert.Equal(t, "general", cell.Markers[1].DepartmentID)
}

func TestCalendarShift(t *testing.T) {
	st := CalendarState{Year: 2025, Month: time.December}
	assert.Equal(t, CalendarState{Year: 2026, Month: time.January}, st.Shift(1))
	assert.Equal(t, CalendarState{Year: 2025, Month: time.November}, st.Shift(-1))
	assert.Equal(t, CalendarState{Year: 2024, Month: time.December}, st.Shift(-12))
}

func mustParse(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse(isoDate, date)
	require.NoError(t, err)
	return d
}
