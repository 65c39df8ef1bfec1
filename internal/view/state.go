package view

import "time"

// Section is a top-level screen.
type Section int

const (
	SectionDashboard Section = iota
	SectionHandovers
	SectionTasks
	SectionCalendar
)

func (s Section) String() string {
	switch s {
	case SectionDashboard:
		return "Dashboard"
	case SectionHandovers:
		return "Handovers"
	case SectionTasks:
		return "Tasks"
	case SectionCalendar:
		return "Calendar"
	}
	return "?"
}

// HandoverState is the selection state of the handover list. An empty
// Department means the first department in the snapshot.
type HandoverState struct {
	Department string
	Query      string
	Page       int
}

// SelectDepartment activates a tab and resets paging.
func (s *HandoverState) SelectDepartment(id string) {
	s.Department = id
	s.Page = 1
}

// SetQuery changes the search text and resets paging.
func (s *HandoverState) SetQuery(q string) {
	s.Query = q
	s.Page = 1
}

// TaskState is the filter state of the task list. Empty filters match all.
type TaskState struct {
	Department string
	Priority   string
	Query      string
	Page       int
}

func (s *TaskState) SetDepartment(id string) {
	s.Department = id
	s.Page = 1
}

func (s *TaskState) SetPriority(id string) {
	s.Priority = id
	s.Page = 1
}

func (s *TaskState) SetQuery(q string) {
	s.Query = q
	s.Page = 1
}

// CalendarState is the month cursor of the calendar.
type CalendarState struct {
	Year  int
	Month time.Month
}

// CalendarAt returns the state showing the month of t.
func CalendarAt(t time.Time) CalendarState {
	return CalendarState{Year: t.Year(), Month: t.Month()}
}

// Shift moves the cursor by n months.
func (s CalendarState) Shift(n int) CalendarState {
	first := time.Date(s.Year, s.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return CalendarState{Year: first.Year(), Month: first.Month()}
}

// State bundles every section's state.
type State struct {
	Section   Section
	Handovers HandoverState
	Tasks     TaskState
	Calendar  CalendarState
	PageSize  int
}

// NewState returns the initial state: dashboard, first pages, calendar on
// the month of now.
func NewState(now time.Time, pageSize int) State {
	return State{
		Section:   SectionDashboard,
		Handovers: HandoverState{Page: 1},
		Tasks:     TaskState{Page: 1},
		Calendar:  CalendarAt(now),
		PageSize:  pageSize,
	}
}
