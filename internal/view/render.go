package view

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/model"
)

const isoDate = "2006-01-02"

// ScheduleRow is a schedule with its department resolved.
type ScheduleRow struct {
	model.Schedule
	Time            string
	DepartmentName  string
	DepartmentColor string
}

// DayAgenda lists the schedules of one date.
type DayAgenda struct {
	Date      string
	Schedules []ScheduleRow
}

// DashboardView shows today's and tomorrow's schedules.
type DashboardView struct {
	Today    DayAgenda
	Tomorrow DayAgenda
}

func scheduleRow(snap cache.Snapshot, s model.Schedule) ScheduleRow {
	return ScheduleRow{
		Schedule:        s,
		Time:            model.FormatTime(s.Time),
		DepartmentName:  snap.DepartmentName(s.DepartmentID),
		DepartmentColor: snap.DepartmentColor(s.DepartmentID),
	}
}

// agenda matches schedules by exact ISO date string, in cached order.
func agenda(snap cache.Snapshot, date string) DayAgenda {
	a := DayAgenda{Date: date}
	for _, s := range snap.Schedules {
		if s.Date == date {
			a.Schedules = append(a.Schedules, scheduleRow(snap, s))
		}
	}
	return a
}

// Dashboard resolves today and tomorrow in now's location.
func Dashboard(snap cache.Snapshot, now time.Time) DashboardView {
	return DashboardView{
		Today:    agenda(snap, now.Format(isoDate)),
		Tomorrow: agenda(snap, now.AddDate(0, 0, 1).Format(isoDate)),
	}
}

// Tab is one department tab of the handover view.
type Tab struct {
	ID     string
	Name   string
	Color  string
	Active bool
}

// HandoverRow is a handover with its references resolved.
type HandoverRow struct {
	model.Handover
	DepartmentName string
	PriorityName   string
	PriorityColor  string
	StatusName     string
	StatusColor    string
}

// HandoversView is the tab bar plus the current page of the active tab.
type HandoversView struct {
	Tabs     []Tab
	Active   string
	Query    string
	Page     Page[HandoverRow]
	Statuses []model.Status
}

func matchesQuery(q, title, description string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(description), q)
}

// ActiveDepartment resolves the tab to show: the requested one when it
// exists, otherwise the first department.
func ActiveDepartment(snap cache.Snapshot, requested string) string {
	if requested != "" {
		if _, ok := snap.Department(requested); ok {
			return requested
		}
	}
	if len(snap.Departments) > 0 {
		return snap.Departments[0].ID
	}
	return requested
}

// FilterHandovers returns the handovers of department matching query,
// newest first.
func FilterHandovers(handovers []model.Handover, department, query string) []model.Handover {
	var out []model.Handover
	for _, h := range handovers {
		if h.DepartmentID == department && matchesQuery(query, h.Title, h.Description) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Handovers renders the handover section.
func Handovers(snap cache.Snapshot, st HandoverState, pageSize int) HandoversView {
	active := ActiveDepartment(snap, st.Department)

	tabs := make([]Tab, 0, len(snap.Departments))
	for _, d := range snap.Departments {
		tabs = append(tabs, Tab{ID: d.ID, Name: d.Name, Color: d.Color, Active: d.ID == active})
	}

	filtered := FilterHandovers(snap.Handovers, active, st.Query)
	rows := make([]HandoverRow, 0, len(filtered))
	for _, h := range filtered {
		rows = append(rows, HandoverRow{
			Handover:       h,
			DepartmentName: snap.DepartmentName(h.DepartmentID),
			PriorityName:   snap.PriorityName(h.PriorityID),
			PriorityColor:  snap.PriorityColor(h.PriorityID),
			StatusName:     snap.StatusName(h.StatusID),
			StatusColor:    snap.StatusColor(h.StatusID),
		})
	}

	return HandoversView{
		Tabs:     tabs,
		Active:   active,
		Query:    st.Query,
		Page:     Paginate(rows, st.Page, pageSize),
		Statuses: snap.StatusesFor(model.CategoryHandover),
	}
}

// TaskRow is a task with its references resolved.
type TaskRow struct {
	model.Task
	DepartmentName  string
	DepartmentColor string
	PriorityName    string
	PriorityColor   string
	StatusName      string
	StatusColor     string
}

// TasksView is the current page of the filtered task list. Statuses is
// the vocabulary offered by each row's status selector.
type TasksView struct {
	Filter      TaskState
	Page        Page[TaskRow]
	Statuses    []model.Status
	Departments []model.Department
	Priorities  []model.Priority
}

// FilterTasks applies the department, priority and search filters (all
// optional, AND-combined) and orders the result newest first.
func FilterTasks(tasks []model.Task, department, priority, query string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if department != "" && t.DepartmentID != department {
			continue
		}
		if priority != "" && t.PriorityID != priority {
			continue
		}
		if !matchesQuery(query, t.Title, t.Description) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Tasks renders the task section.
func Tasks(snap cache.Snapshot, st TaskState, pageSize int) TasksView {
	filtered := FilterTasks(snap.Tasks, st.Department, st.Priority, st.Query)
	rows := make([]TaskRow, 0, len(filtered))
	for _, t := range filtered {
		rows = append(rows, TaskRow{
			Task:            t,
			DepartmentName:  snap.DepartmentName(t.DepartmentID),
			DepartmentColor: snap.DepartmentColor(t.DepartmentID),
			PriorityName:    snap.PriorityName(t.PriorityID),
			PriorityColor:   snap.PriorityColor(t.PriorityID),
			StatusName:      snap.StatusName(t.StatusID),
			StatusColor:     snap.StatusColor(t.StatusID),
		})
	}

	return TasksView{
		Filter:      st,
		Page:        Paginate(rows, st.Page, pageSize),
		Statuses:    snap.StatusesFor(model.CategoryTask),
		Departments: snap.Departments,
		Priorities:  snap.Priorities,
	}
}

// CalendarCells is the fixed size of the month grid: six weeks.
const CalendarCells = 42

// Marker is one department shown on a calendar day or in the legend.
type Marker struct {
	DepartmentID string
	Name         string
	Color        string
}

// CalendarCell is one day of the month grid.
type CalendarCell struct {
	Date      string
	Day       int
	InMonth   bool
	Today     bool
	Markers   []Marker
	Schedules []ScheduleRow
}

// CalendarView is a six-week grid starting on the Sunday on or before the
// first of the month, plus a department legend.
type CalendarView struct {
	Year   int
	Month  time.Month
	Cells  []CalendarCell
	Legend []Marker
}

// Calendar renders the month in st. today marks the current day.
func Calendar(snap cache.Snapshot, st CalendarState, today time.Time) CalendarView {
	first := time.Date(st.Year, st.Month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayStr := today.Format(isoDate)

	byDate := make(map[string][]model.Schedule)
	for _, s := range snap.Schedules {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	cells := make([]CalendarCell, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		d := start.AddDate(0, 0, i)
		date := d.Format(isoDate)
		cell := CalendarCell{
			Date:    date,
			Day:     d.Day(),
			InMonth: d.Month() == st.Month,
			Today:   date == todayStr,
		}

		seen := make(map[string]bool)
		for _, s := range byDate[date] {
			cell.Schedules = append(cell.Schedules, scheduleRow(snap, s))
			if seen[s.DepartmentID] {
				continue
			}
			seen[s.DepartmentID] = true
			cell.Markers = append(cell.Markers, Marker{
				DepartmentID: s.DepartmentID,
				Name:         snap.DepartmentName(s.DepartmentID),
				Color:        snap.DepartmentColor(s.DepartmentID),
			})
		}
		cells = append(cells, cell)
	}

	legend := make([]Marker, 0, len(snap.Departments))
	for _, d := range snap.Departments {
		legend = append(legend, Marker{DepartmentID: d.ID, Name: d.Name, Color: d.Color})
	}

	return CalendarView{Year: st.Year, Month: st.Month, Cells: cells, Legend: legend}
}
