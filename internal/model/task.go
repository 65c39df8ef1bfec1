package model

import "time"

// TaskInput holds the user-editable fields of a task.
type TaskInput struct {
	Title        string `json:"title" db:"title"`
	DepartmentID string `json:"department_id" db:"department_id"`
	Description  string `json:"description" db:"description"`
	PriorityID   string `json:"priority_id" db:"priority_id"`
	StatusID     string `json:"status_id" db:"status_id"`

	// DueDate is an ISO calendar date (YYYY-MM-DD) or empty.
	DueDate  string `json:"due_date" db:"due_date"`
	Assignee string `json:"assignee" db:"assignee"`

	// Completed mirrors StatusID == the configured completed status. It is
	// kept for older readers of the tasks table and is never set directly
	// by the UI.
	Completed bool `json:"completed" db:"completed"`
}

// Task is a unit of work assigned to a department.
type Task struct {
	ID int64 `json:"id" db:"id"`
	TaskInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the polymorphic key for this task.
func (t Task) Ref() ItemRef { return TaskRef(t.ID) }
