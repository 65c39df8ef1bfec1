package model

// Status ids shipped with the default vocabulary.
const (
	StatusTaskTodo       = "task_todo"
	StatusTaskInProgress = "task_in_progress"
	StatusTaskCompleted  = "task_completed"

	StatusHandoverPending    = "handover_pending"
	StatusHandoverInProgress = "handover_in_progress"
	StatusHandoverCompleted  = "handover_completed"
)

// FallbackColor is shown for references that do not resolve.
const FallbackColor = "#666666"

// DefaultDepartments returns the built-in department list used when the
// backend cannot be read.
func DefaultDepartments() []Department {
	return []Department{
		{ID: "general", Name: "庶務係", Color: "#4A90E2"},
		{ID: "fire", Name: "警防係", Color: "#E74C3C"},
		{ID: "prevention", Name: "予防係", Color: "#F39C12"},
		{ID: "emergency", Name: "救急・救助係", Color: "#27AE60"},
		{ID: "machinery", Name: "機械係", Color: "#9B59B6"},
	}
}

// DefaultPriorities returns the built-in priorities, highest level first.
func DefaultPriorities() []Priority {
	return []Priority{
		{ID: "urgent", Name: "緊急", Color: "#DC3545", Level: 4},
		{ID: "high", Name: "重要度高", Color: "#FD7E14", Level: 3},
		{ID: "medium", Name: "重要度中", Color: "#FFC107", Level: 2},
		{ID: "low", Name: "重要度低", Color: "#28A745", Level: 1},
	}
}

// DefaultStatuses returns the built-in status vocabulary ordered by
// category then order index.
func DefaultStatuses() []Status {
	return []Status{
		{ID: StatusHandoverPending, Name: "未対応", Color: "#DC3545", Category: CategoryHandover, OrderIndex: 1},
		{ID: StatusHandoverInProgress, Name: "対応中", Color: "#FFC107", Category: CategoryHandover, OrderIndex: 2},
		{ID: StatusHandoverCompleted, Name: "対応済", Color: "#28A745", Category: CategoryHandover, OrderIndex: 3},
		{ID: StatusTaskTodo, Name: "未着手", Color: "#6C757D", Category: CategoryTask, OrderIndex: 1},
		{ID: StatusTaskInProgress, Name: "進行中", Color: "#007BFF", Category: CategoryTask, OrderIndex: 2},
		{ID: StatusTaskCompleted, Name: "完了", Color: "#28A745", Category: CategoryTask, OrderIndex: 3},
	}
}
