package timeclock

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeclock_repo.go -destination=mock/timeclock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *ClockEntry) error
	Update(ctx context.Context, e *ClockEntry) error
	FindOpenByEmployee(ctx context.Context, employeeID string) (*ClockEntry, error)
	FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]ClockEntry, error)
	FindAllByRange(ctx context.Context, from, to time.Time) ([]ClockEntry, error)
	CreateBreak(ctx context.Context, b *BreakInterval) error
	UpdateBreak(ctx context.Context, b *BreakInterval) error
	FindOpenBreak(ctx context.Context, entryID string) (*BreakInterval, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, e *ClockEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *ClockEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindOpenByEmployee(ctx context.Context, employeeID string) (*ClockEntry, error) {
	var e ClockEntry
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("employee_id = ?", employeeID).
		Where("clock_out IS NULL").
		First(&e).Error
	return &e, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]ClockEntry, error) {
	var rows []ClockEntry
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Where("entry_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("entry_date ASC, clock_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByRange(ctx context.Context, from, to time.Time) ([]ClockEntry, error) {
	var rows []ClockEntry
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Preload("Employee").
		Where("entry_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("entry_date ASC, clock_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateBreak(ctx context.Context, b *BreakInterval) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) UpdateBreak(ctx context.Context, b *BreakInterval) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) FindOpenBreak(ctx context.Context, entryID string) (*BreakInterval, error) {
	var b BreakInterval
	err := r.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Where("end_at IS NULL").
		First(&b).Error
	return &b, err
}
