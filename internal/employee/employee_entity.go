package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName    string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Password    string    `gorm:"type:varchar(255);not null"`
	Role        string    `gorm:"type:varchar(100);not null;default:'employee'"`
	AccessLevel string    `gorm:"type:varchar(20);not null;default:'team_only'"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	// Berlaku hanya untuk multi_team / team_only; diabaikan saat full.
	AccessTeams []AccessTeam `gorm:"foreignKey:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

type AccessTeam struct {
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (AccessTeam) TableName() string {
	return "employee_access_teams"
}
