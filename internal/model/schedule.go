package model

import "time"

// DefaultScheduleDuration is used when a schedule is created without a
// duration.
const DefaultScheduleDuration = 60

// ScheduleInput holds the user-editable fields of a schedule.
type ScheduleInput struct {
	Title        string `json:"title" db:"title"`
	DepartmentID string `json:"department_id" db:"department_id"`

	// Date is an ISO calendar date (YYYY-MM-DD). Dashboard and calendar
	// matching compare it as a plain string.
	Date string `json:"date" db:"date"`

	// Time is the start time, HH:MM (a trailing :SS is tolerated).
	Time        string `json:"time" db:"time"`
	Description string `json:"description" db:"description"`

	// Duration is in minutes.
	Duration int `json:"duration" db:"duration"`
}

// Schedule is a calendar-bound event owned by a department.
type Schedule struct {
	ID int64 `json:"id" db:"id"`
	ScheduleInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the polymorphic key for this schedule.
func (s Schedule) Ref() ItemRef { return ScheduleRef(s.ID) }

// FormatTime trims a time-of-day value to HH:MM.
func FormatTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
