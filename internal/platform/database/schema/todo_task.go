package schema

// TodoTaskTable represents the 'todo.task' table
type TodoTaskTable struct {
	Table     string
	ID        string
	ListID    string
	Title     string
	Completed string
	CreatedAt string
	UpdatedAt string
}

// TodoTask is the schema definition for todo.task
var TodoTask = TodoTaskTable{
	Table:     "todo.task",
	ID:        "id",
	ListID:    "listid",
	Title:     "title",
	Completed: "completed",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t TodoTaskTable) Columns() []string {
	return []string{t.ID, t.ListID, t.Title, t.Completed, t.CreatedAt, t.UpdatedAt}
}
