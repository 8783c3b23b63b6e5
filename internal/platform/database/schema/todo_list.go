package schema

// TodoListTable represents the 'todo.list' table
type TodoListTable struct {
	Table     string
	ID        string
	UserID    string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// TodoList is the schema definition for todo.list
var TodoList = TodoListTable{
	Table:     "todo.list",
	ID:        "id",
	UserID:    "userid",
	Title:     "title",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t TodoListTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Title, t.CreatedAt, t.UpdatedAt}
}
