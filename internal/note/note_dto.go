package note

type CreateNoteRequest struct {
	Title   string  `json:"title" binding:"required,max=150"`
	Content *string `json:"content"`
	Color   string  `json:"color" binding:"omitempty,oneof=yellow green blue pink purple gray"`
}

type UpdateNoteRequest struct {
	Title   string  `json:"title" binding:"required,max=150"`
	Content *string `json:"content"`
	Color   string  `json:"color" binding:"omitempty,oneof=yellow green blue pink purple gray"`
}

type NoteResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   *string `json:"content,omitempty"`
	Color     string  `json:"color"`
	IsPinned  bool    `json:"is_pinned"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}
