package note

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=note_repo.go -destination=mock/note_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Note) error
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id string) error
	FindByIDAndOwner(ctx context.Context, id, employeeID string) (*Note, error)
	FindAllByOwner(ctx context.Context, employeeID string) ([]Note, error)
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

func (r *repository) Create(ctx context.Context, n *Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) Update(ctx context.Context, n *Note) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Note{}).Error
}

func (r *repository) FindByIDAndOwner(ctx context.Context, id, employeeID string) (*Note, error) {
	var n Note
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		First(&n).Error
	return &n, err
}

func (r *repository) FindAllByOwner(ctx context.Context, employeeID string) ([]Note, error) {
	var rows []Note
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("is_pinned DESC, updated_at DESC").
		Find(&rows).Error
	return rows, err
}
