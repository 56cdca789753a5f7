package team

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description *string   `gorm:"type:text"`
	Color       *string   `gorm:"type:varchar(20)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Team) TableName() string {
	return "teams"
}

type Membership struct {
	TeamID     uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Role       string       `gorm:"type:varchar(50);not null;default:'member'"`
	CreatedAt  time.Time
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Membership) TableName() string {
	return "team_memberships"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
