package team

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type UpdateTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type AddMemberRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Role       string `json:"role"`
}

type TeamResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	MemberCount int64   `json:"member_count"`
}

type MemberResponse struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	JoinedAt   string `json:"joined_at"`
}
