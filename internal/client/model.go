package client

// Task is the wire representation of a task as served by the task API.
// The service keys records by task_id; id is accepted as an alias on decode.
type Task struct {
	TaskID      string  `json:"task_id,omitempty"`
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	UserID      string  `json:"user_id,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Key returns the record identifier.
func (t Task) Key() string {
	if t.TaskID != "" {
		return t.TaskID
	}
	return t.ID
}

// CreateTaskRequest is the POST /tasks body. Absent optional fields are omitted.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date,omitempty"`
}

// UpdateTaskRequest is the PUT /tasks/{id} body. Every editable field is
// sent; absent optional fields are sent as null so the record is replaced
// wholesale.
type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
}
