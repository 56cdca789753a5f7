package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
	ReplaceAccessTeams(ctx context.Context, employeeID string, teamIDs []string) error
	SetActive(ctx context.Context, id string, active bool) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Preload("AccessTeams").
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("AccessTeams").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("AccessTeams").
		Where("email = ?", email).
		First(&e).Error
	return &e, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "email", "role", "access_level", "is_active").
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Omit("AccessTeams").
		Save(e).Error
}

func (r *repository) ReplaceAccessTeams(ctx context.Context, employeeID string, teamIDs []string) error {
	db := r.db.WithContext(ctx)

	if err := db.Delete(&AccessTeam{}, "employee_id = ?", employeeID).Error; err != nil {
		return err
	}
	if len(teamIDs) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		rows = append(rows, map[string]any{
			"employee_id": employeeID,
			"team_id":     teamID,
		})
	}
	return db.Table("employee_access_teams").Create(rows).Error
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
