package team

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"metaedge-portal/internal/principal"
	teamerrors "metaedge-portal/internal/team/errors"
)

type fakeRepo struct {
	createFn          func(ctx context.Context, t *Team) error
	findAllFn         func(ctx context.Context) ([]Team, error)
	findAllByIDsFn    func(ctx context.Context, ids []string) ([]Team, error)
	findByIDFn        func(ctx context.Context, id string) (*Team, error)
	updateFn          func(ctx context.Context, t *Team) error
	deleteFn          func(ctx context.Context, id string) error
	memberCountsFn    func(ctx context.Context) (map[string]int64, error)
	countReferencesFn func(ctx context.Context, id string) (int64, error)
	addMemberFn       func(ctx context.Context, m *Membership) error
	removeMemberFn    func(ctx context.Context, teamID, employeeID string) (int64, error)
	findMembersFn     func(ctx context.Context, teamID string) ([]Membership, error)
	employeeExistsFn  func(ctx context.Context, employeeID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository              { return f }
func (f *fakeRepo) Create(ctx context.Context, t *Team) error { return f.createFn(ctx, t) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Team, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindAllByIDs(ctx context.Context, ids []string) ([]Team, error) {
	return f.findAllByIDsFn(ctx, ids)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Team, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, t *Team) error { return f.updateFn(ctx, t) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}
func (f *fakeRepo) MemberCounts(ctx context.Context) (map[string]int64, error) {
	return f.memberCountsFn(ctx)
}
func (f *fakeRepo) CountReferences(ctx context.Context, id string) (int64, error) {
	return f.countReferencesFn(ctx, id)
}
func (f *fakeRepo) AddMember(ctx context.Context, m *Membership) error {
	return f.addMemberFn(ctx, m)
}
func (f *fakeRepo) RemoveMember(ctx context.Context, teamID, employeeID string) (int64, error) {
	return f.removeMemberFn(ctx, teamID, employeeID)
}
func (f *fakeRepo) FindMembers(ctx context.Context, teamID string) ([]Membership, error) {
	return f.findMembersFn(ctx, teamID)
}
func (f *fakeRepo) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	return f.employeeExistsFn(ctx, employeeID)
}

func TestService_Delete_BlockedByReferences(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	teamID := uuid.New()
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Team, error) {
		return &Team{ID: teamID, Name: "Creative"}, nil
	}
	repo.countReferencesFn = func(ctx context.Context, id string) (int64, error) { return 4, nil }

	svc := NewService(db, repo)

	err := svc.Delete(context.Background(), teamID.String())
	assert.ErrorIs(t, err, teamerrors.ErrTeamInUse)

	// Tanpa referensi, penghapusan jalan.
	deleted := false
	repo.countReferencesFn = func(ctx context.Context, id string) (int64, error) { return 0, nil }
	repo.deleteFn = func(ctx context.Context, id string) error { deleted = true; return nil }

	err = svc.Delete(context.Background(), teamID.String())
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestService_AddMember_Duplicate(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	teamID := uuid.New()
	employeeID := uuid.New()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Team, error) {
		return &Team{ID: teamID, Name: "Media Buying"}, nil
	}
	repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) { return true, nil }
	repo.addMemberFn = func(ctx context.Context, m *Membership) error {
		return &pgconn.PgError{Code: "23505", ConstraintName: "team_memberships_pkey"}
	}

	svc := NewService(db, repo)

	_, err := svc.AddMember(context.Background(), teamID.String(), AddMemberRequest{EmployeeID: employeeID.String()})
	assert.ErrorIs(t, err, teamerrors.ErrMemberAlreadyExists)
}

func TestService_AddMember_DefaultRole(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	teamID := uuid.New()
	employeeID := uuid.New()

	var saved Membership
	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Team, error) {
		return &Team{ID: teamID}, nil
	}
	repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) { return true, nil }
	repo.addMemberFn = func(ctx context.Context, m *Membership) error { saved = *m; return nil }

	svc := NewService(db, repo)

	resp, err := svc.AddMember(context.Background(), teamID.String(), AddMemberRequest{EmployeeID: employeeID.String()})
	assert.NoError(t, err)
	assert.Equal(t, "member", resp.Role)
	assert.Equal(t, "member", saved.Role)
}

func TestService_AddMember_EmployeeNotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Team, error) {
		return &Team{ID: uuid.New()}, nil
	}
	repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) { return false, nil }

	svc := NewService(db, repo)

	_, err := svc.AddMember(context.Background(), uuid.New().String(), AddMemberRequest{EmployeeID: uuid.New().String()})
	assert.ErrorIs(t, err, teamerrors.ErrEmployeeNotFound)
}

func TestService_RemoveMember_NotFound(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.removeMemberFn = func(ctx context.Context, teamID, employeeID string) (int64, error) {
		return 0, nil
	}

	svc := NewService(db, repo)

	err := svc.RemoveMember(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, teamerrors.ErrMemberNotFound)
}

func TestService_GetAll_Scoped(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	teamA := uuid.New()
	teamB := uuid.New()

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context) ([]Team, error) {
		return []Team{{ID: teamA, Name: "Creative"}, {ID: teamB, Name: "Performance"}}, nil
	}
	repo.findAllByIDsFn = func(ctx context.Context, ids []string) ([]Team, error) {
		assert.Equal(t, []string{teamA.String()}, ids)
		return []Team{{ID: teamA, Name: "Creative"}}, nil
	}
	repo.memberCountsFn = func(ctx context.Context) (map[string]int64, error) {
		return map[string]int64{teamA.String(): 5}, nil
	}

	svc := NewService(db, repo)

	admin := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}
	rows, err := svc.GetAll(context.Background(), admin)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(5), rows[0].MemberCount)

	member := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{teamA.String()},
	}
	rows, err = svc.GetAll(context.Background(), member)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Creative", rows[0].Name)
}

func TestService_GetByID_OutOfScopeHidden(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*Team, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)
	member := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{uuid.New().String()},
	}

	_, err := svc.GetByID(context.Background(), member, uuid.New().String())
	assert.ErrorIs(t, err, teamerrors.ErrTeamNotFound)
}
