package model

// Department is a shift department. Departments are static reference data.
type Department struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

// Priority ranks handovers and tasks. Higher Level means more pressing.
type Priority struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
	Level int    `json:"level" db:"level"`
}

// StatusCategory partitions the status vocabulary by owning entity kind.
type StatusCategory string

const (
	CategoryTask     StatusCategory = "task"
	CategoryHandover StatusCategory = "handover"
)

// Status is a workflow state. OrderIndex is display order only; any status
// in a category may move to any other status in the same category.
type Status struct {
	ID         string         `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Color      string         `json:"color" db:"color"`
	Category   StatusCategory `json:"category" db:"category"`
	OrderIndex int            `json:"order_index" db:"order_index"`
}
