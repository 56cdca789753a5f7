package note

import (
	"time"

	"github.com/google/uuid"
)

// Note bersifat privat untuk pemiliknya, access level tidak berpengaruh.
type Note struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index"`
	Title      string    `gorm:"column:title;type:varchar(150);not null"`
	Content    *string   `gorm:"column:content;type:text"`
	Color      string    `gorm:"column:color;type:varchar(20);not null;default:'yellow'"`
	IsPinned   bool      `gorm:"column:is_pinned;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Note) TableName() string {
	return "personal_notes"
}
