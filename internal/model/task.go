package model

// Task priorities. An empty priority means none was set.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Subtask statuses.
const (
	SubtaskTodo = "todo"
	SubtaskDone = "done"
)

// DefaultTaskStatuses is the status set used unless configured otherwise.
// The first entry is the status of new tasks.
var DefaultTaskStatuses = []string{"Not started", "Re-surface", "In progress", "Done"}

// Task is a single item in the task tracker.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"` // YYYY-MM-DD
	ProjectID string    `json:"projectId,omitempty"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

// Subtask is an ordered checklist entry of a task.
type Subtask struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// TaskPatch is a partial task update. Nil fields are left untouched; an empty
// string clears Priority, DueDate or ProjectID.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Status    *string `json:"status,omitempty"`
	Priority  *string `json:"priority,omitempty"`
	DueDate   *string `json:"dueDate,omitempty"`
	ProjectID *string `json:"projectId,omitempty"`
}

// ValidPriority reports whether p is empty or one of the known priorities.
func ValidPriority(p string) bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
