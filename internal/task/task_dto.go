package task

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	TeamID      string  `json:"team_id" binding:"required,uuid"`
	Description *string `json:"description"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=High Medium Low"`
	DueDate     *string `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	AssigneeID  *string `json:"assignee_id" binding:"omitempty,uuid"`
	Priority    string  `json:"priority" binding:"required,oneof=High Medium Low"`
	DueDate     *string `json:"due_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type TaskResponse struct {
	ID           string  `json:"id"`
	Number       int64   `json:"number"`
	TeamID       string  `json:"team_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	AssigneeID   *string `json:"assignee_id,omitempty"`
	AssigneeName string  `json:"assignee_name,omitempty"`
	CreatedBy    string  `json:"created_by"`
	Status       string  `json:"status"`
	Priority     string  `json:"priority"`
	DueDate      *string `json:"due_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type CommentResponse struct {
	ID         string `json:"id"`
	TaskID     string `json:"task_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name,omitempty"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}
