package timeclock

import (
	"time"

	"github.com/google/uuid"
)

// ClockEntry adalah satu sesi kerja: clock-in sampai clock-out.
// Paling banyak satu entry terbuka per karyawan, dijaga oleh partial
// unique index uq_clock_entries_open (employee_id WHERE clock_out IS NULL).
type ClockEntry struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID       `gorm:"column:employee_id;type:uuid;not null;index"`
	EntryDate  time.Time       `gorm:"column:entry_date;type:date;not null;index"`
	ClockIn    time.Time       `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut   *time.Time      `gorm:"column:clock_out;type:timestamptz"`
	Notes      *string         `gorm:"column:notes;type:text"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
	Breaks     []BreakInterval `gorm:"foreignKey:EntryID;references:ID"`
	Employee   *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (ClockEntry) TableName() string {
	return "clock_entries"
}

type BreakInterval struct {
	ID      uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryID uuid.UUID  `gorm:"column:entry_id;type:uuid;not null;index"`
	StartAt time.Time  `gorm:"column:start_at;type:timestamptz;not null"`
	EndAt   *time.Time `gorm:"column:end_at;type:timestamptz"`
}

func (BreakInterval) TableName() string {
	return "clock_break_intervals"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
