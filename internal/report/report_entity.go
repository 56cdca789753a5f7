package report

import (
	"time"

	"github.com/google/uuid"
)

type WeeklyReport struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	TeamID         uuid.UUID `gorm:"column:team_id;type:uuid;not null;index"`
	Title          *string   `gorm:"column:title;type:varchar(150)"`
	Body           string    `gorm:"column:body;type:text"`
	AttachmentPath *string   `gorm:"column:attachment_path;type:varchar(500)"`
	WeekStart      time.Time `gorm:"column:week_start;type:date;not null;index"`
	WeekEnd        time.Time `gorm:"column:week_end;type:date;not null"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (WeeklyReport) TableName() string {
	return "weekly_reports"
}

type MonthlyReport struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	TeamID         uuid.UUID `gorm:"column:team_id;type:uuid;not null;index"`
	Title          *string   `gorm:"column:title;type:varchar(150)"`
	Body           string    `gorm:"column:body;type:text"`
	AttachmentPath *string   `gorm:"column:attachment_path;type:varchar(500)"`
	Month          string    `gorm:"column:month;type:varchar(7);not null;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (MonthlyReport) TableName() string {
	return "monthly_reports"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
