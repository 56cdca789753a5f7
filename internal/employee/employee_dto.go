package employee

type CreateEmployeeRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=6"`
	Role        string   `json:"role"`
	AccessLevel string   `json:"access_level" binding:"required,oneof=full multi_team team_only"`
	AccessTeams []string `json:"access_teams" binding:"omitempty,dive,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Role        string   `json:"role"`
	AccessLevel string   `json:"access_level" binding:"required,oneof=full multi_team team_only"`
	AccessTeams []string `json:"access_teams" binding:"omitempty,dive,uuid"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type EmployeeResponse struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	AccessLevel string   `json:"access_level"`
	AccessTeams []string `json:"access_teams,omitempty"`
	IsActive    bool     `json:"is_active"`
}
