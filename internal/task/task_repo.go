package task

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	FindAllByTeam(ctx context.Context, teamID string) ([]Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	DeleteComments(ctx context.Context, taskID string) error
	CreateComment(ctx context.Context, cm *Comment) error
	FindComments(ctx context.Context, taskID string) ([]Comment, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByTeam(ctx context.Context, teamID string) ([]Task, error) {
	var rows []Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Omit("Assignee").Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id).Error
}

// DeleteComments dipanggil dalam transaksi yang sama dengan Delete task
// agar comment tidak pernah yatim.
func (r *repository) DeleteComments(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&Comment{}).Error
}

func (r *repository) CreateComment(ctx context.Context, cm *Comment) error {
	return r.db.WithContext(ctx).Create(cm).Error
}

func (r *repository) FindComments(ctx context.Context, taskID string) ([]Comment, error) {
	var rows []Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TeamExists(ctx context.Context, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("teams").
		Where("id = ?", teamID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
