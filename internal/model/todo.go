package model

// Todo priority levels as the backend encodes them.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo is a single task item belonging to exactly one folder.
// The backend owns the folder relation; the client never re-parents a todo.
type Todo struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	DueDate     string `json:"due_date,omitempty" db:"due_date"`
	Priority    string `json:"priority" db:"priority"`
	Completed   bool   `json:"completed" db:"completed"`
	FolderID    int64  `json:"folder_id" db:"folder_id"`
}

// PriorityRank maps a priority label to a sortable rank (high first).
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
