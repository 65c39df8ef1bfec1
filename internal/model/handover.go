package model

import "time"

// HandoverInput holds the user-editable fields of a handover note.
type HandoverInput struct {
	DepartmentID string `json:"department_id" db:"department_id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	PriorityID   string `json:"priority_id" db:"priority_id"`
	StatusID     string `json:"status_id" db:"status_id"`
}

// Handover is a note passed from one shift to the next within a department.
type Handover struct {
	ID int64 `json:"id" db:"id"`
	HandoverInput
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Ref returns the polymorphic key for this handover.
func (h Handover) Ref() ItemRef { return HandoverRef(h.ID) }
