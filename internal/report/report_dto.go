package report

const (
	KindWeekly  = "weekly"
	KindMonthly = "monthly"
)

type CreateReportRequest struct {
	Kind      string  `json:"kind" binding:"required,oneof=weekly monthly"`
	TeamID    string  `json:"team_id" binding:"required,uuid"`
	Title     *string `json:"title"`
	Body      string  `json:"body"`
	WeekStart string  `json:"week_start"`
	WeekEnd   string  `json:"week_end"`
	Month     string  `json:"month"`
}

// CreateReportInput dirakit handler dari form multipart (atau JSON tanpa
// lampiran) sebelum masuk ke service.
type CreateReportInput struct {
	Kind      string
	TeamID    string
	Title     *string
	Body      string
	WeekStart string
	WeekEnd   string
	Month     string

	FileName    string
	ContentType string
	FileData    []byte
}

type UpdateReportRequest struct {
	Title            *string `json:"title"`
	Body             string  `json:"body"`
	RemoveAttachment bool    `json:"remove_attachment"`
}

// UpdateReportInput dirakit handler dari body JSON atau form multipart;
// FileData terisi berarti ganti lampiran lama.
type UpdateReportInput struct {
	Title            *string
	Body             string
	RemoveAttachment bool

	FileName    string
	ContentType string
	FileData    []byte
}

type ListFilter struct {
	TeamID string `form:"team_id"`
	Period string `form:"period"`
}

type ReportResponse struct {
	ID             string  `json:"id"`
	Kind           string  `json:"kind"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	TeamID         string  `json:"team_id"`
	Title          *string `json:"title,omitempty"`
	Body           string  `json:"body,omitempty"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
	WeekStart      string  `json:"week_start,omitempty"`
	WeekEnd        string  `json:"week_end,omitempty"`
	Month          string  `json:"month,omitempty"`
	CreatedAt      string  `json:"created_at"`
	Warning        string  `json:"warning,omitempty"`
}
