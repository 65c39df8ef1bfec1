package calendar

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/keys"
	"github.com/nhle/shift-handover/internal/model"
	"github.com/nhle/shift-handover/internal/view"
)

func calendarView() view.CalendarView {
	snap := cache.Snapshot{
		Departments: model.DefaultDepartments(),
		Schedules: []model.Schedule{
			{ID: 1, ScheduleInput: model.ScheduleInput{Title: "a", DepartmentID: "fire", Date: "2025-10-01"}},
			{ID: 2, ScheduleInput: model.ScheduleInput{Title: "b", DepartmentID: "general", Date: "2025-10-01"}},
		},
	}
	return view.Calendar(snap, view.CalendarState{Year: 2025, Month: time.October}, time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC))
}

func press(t *testing.T, m Model, v view.CalendarView, k tea.KeyMsg) Model {
	t.Helper()
	m, _ = m.Update(k, v)
	return m
}

func TestFocusAndMove(t *testing.T) {
	v := calendarView()
	m := New(keys.DefaultKeyMap(), 80, 24)

	m.FocusFirst(v)
	cell, ok := m.Selected(v)
	require.True(t, ok)
	assert.Equal(t, "2025-10-01", cell.Date)

	m = press(t, m, v, tea.KeyMsg{Type: tea.KeyDown})
	cell, _ = m.Selected(v)
	assert.Equal(t, "2025-10-08", cell.Date)

	m = press(t, m, v, tea.KeyMsg{Type: tea.KeyRight})
	cell, _ = m.Selected(v)
	assert.Equal(t, "2025-10-09", cell.Date)

	m.Focus(v, "2025-09-28")
	m = press(t, m, v, tea.KeyMsg{Type: tea.KeyLeft})
	cell, _ = m.Selected(v)
	assert.Equal(t, "2025-09-28", cell.Date, "cursor stays inside the grid")
}

func TestDaySchedulesCursor(t *testing.T) {
	v := calendarView()
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.Focus(v, "2025-10-01")

	s, ok := m.SelectedSchedule(v)
	require.True(t, ok)
	assert.Equal(t, int64(1), s.ID)

	m = press(t, m, v, tea.KeyMsg{Type: tea.KeyTab})
	s, _ = m.SelectedSchedule(v)
	assert.Equal(t, int64(2), s.ID)

	m.Focus(v, "2025-10-02")
	_, ok = m.SelectedSchedule(v)
	assert.False(t, ok)
}

func TestViewRendersMonthTitle(t *testing.T) {
	v := calendarView()
	m := New(keys.DefaultKeyMap(), 80, 24)
	m.FocusFirst(v)
	out := m.View(v)
	assert.Contains(t, out, "2025年10月")
	assert.Contains(t, out, "警防係")
}
