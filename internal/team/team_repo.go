package team

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Team) error
	FindAll(ctx context.Context) ([]Team, error)
	FindAllByIDs(ctx context.Context, ids []string) ([]Team, error)
	FindByID(ctx context.Context, id string) (*Team, error)
	Update(ctx context.Context, t *Team) error
	Delete(ctx context.Context, id string) error
	MemberCounts(ctx context.Context) (map[string]int64, error)
	CountReferences(ctx context.Context, id string) (int64, error)
	AddMember(ctx context.Context, m *Membership) error
	RemoveMember(ctx context.Context, teamID, employeeID string) (int64, error)
	FindMembers(ctx context.Context, teamID string) ([]Membership, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Team, error) {
	var rows []Team
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByIDs(ctx context.Context, ids []string) ([]Team, error) {
	var rows []Team
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Team, error) {
	var t Team
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *Team) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Team{}, "id = ?", id).Error
}

// MemberCounts dihitung saat baca, tidak pernah disimpan sebagai kolom.
func (r *repository) MemberCounts(ctx context.Context) (map[string]int64, error) {
	type row struct {
		TeamID string
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("team_memberships").
		Select("team_id, COUNT(*) AS total").
		Group("team_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, v := range rows {
		counts[v.TeamID] = v.Total
	}
	return counts, nil
}

// CountReferences menghitung task dan report yang masih menunjuk team ini.
func (r *repository) CountReferences(ctx context.Context, id string) (int64, error) {
	var total int64

	var tasks int64
	if err := r.db.WithContext(ctx).
		Table("tasks").
		Where("team_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&tasks).Error; err != nil {
		return 0, err
	}
	total += tasks

	for _, table := range []string{"weekly_reports", "monthly_reports"} {
		var reports int64
		if err := r.db.WithContext(ctx).
			Table(table).
			Where("team_id = ?", id).
			Count(&reports).Error; err != nil {
			return 0, err
		}
		total += reports
	}

	return total, nil
}

func (r *repository) AddMember(ctx context.Context, m *Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) RemoveMember(ctx context.Context, teamID, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("employee_id = ?", employeeID).
		Delete(&Membership{})
	return res.RowsAffected, res.Error
}

func (r *repository) FindMembers(ctx context.Context, teamID string) ([]Membership, error) {
	var rows []Membership
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("team_id = ?", teamID).
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
