package report

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Scope membatasi baris yang boleh dilihat: semua untuk full access,
// selain itu milik sendiri ditambah tim dalam access_teams.
type Scope struct {
	All        bool
	EmployeeID string
	TeamIDs    []string
}

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateWeekly(ctx context.Context, r *WeeklyReport) error
	UpdateWeekly(ctx context.Context, r *WeeklyReport) error
	DeleteWeekly(ctx context.Context, id string) error
	FindWeeklyByID(ctx context.Context, id string) (*WeeklyReport, error)
	FindWeekly(ctx context.Context, scope Scope, filter ListFilter) ([]WeeklyReport, error)

	CreateMonthly(ctx context.Context, r *MonthlyReport) error
	UpdateMonthly(ctx context.Context, r *MonthlyReport) error
	DeleteMonthly(ctx context.Context, id string) error
	FindMonthlyByID(ctx context.Context, id string) (*MonthlyReport, error)
	FindMonthly(ctx context.Context, scope Scope, filter ListFilter) ([]MonthlyReport, error)

	TeamExists(ctx context.Context, teamID string) (bool, error)
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

func (r *repository) CreateWeekly(ctx context.Context, w *WeeklyReport) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) UpdateWeekly(ctx context.Context, w *WeeklyReport) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *repository) DeleteWeekly(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&WeeklyReport{}).Error
}

func (r *repository) FindWeeklyByID(ctx context.Context, id string) (*WeeklyReport, error) {
	var w WeeklyReport
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&w).Error
	return &w, err
}

func (r *repository) FindWeekly(ctx context.Context, scope Scope, filter ListFilter) ([]WeeklyReport, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	q = applyScope(q, scope)
	if filter.TeamID != "" {
		q = q.Where("team_id = ?", filter.TeamID)
	}
	if filter.Period != "" {
		q = q.Where("week_start = ?", filter.Period)
	}
	var rows []WeeklyReport
	err := q.Order("week_start DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) CreateMonthly(ctx context.Context, m *MonthlyReport) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) UpdateMonthly(ctx context.Context, m *MonthlyReport) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) DeleteMonthly(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&MonthlyReport{}).Error
}

func (r *repository) FindMonthlyByID(ctx context.Context, id string) (*MonthlyReport, error) {
	var m MonthlyReport
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("id = ?", id).
		First(&m).Error
	return &m, err
}

func (r *repository) FindMonthly(ctx context.Context, scope Scope, filter ListFilter) ([]MonthlyReport, error) {
	q := r.db.WithContext(ctx).Preload("Employee")
	q = applyScope(q, scope)
	if filter.TeamID != "" {
		q = q.Where("team_id = ?", filter.TeamID)
	}
	if filter.Period != "" {
		q = q.Where("month = ?", filter.Period)
	}
	var rows []MonthlyReport
	err := q.Order("month DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) TeamExists(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("teams").
		Where("id = ?", teamID).
		Count(&count).Error
	return count > 0, err
}

func applyScope(q *gorm.DB, scope Scope) *gorm.DB {
	if scope.All {
		return q
	}
	if len(scope.TeamIDs) == 0 {
		return q.Where("employee_id = ?", scope.EmployeeID)
	}
	return q.Where("employee_id = ? OR team_id IN ?", scope.EmployeeID, scope.TeamIDs)
}
