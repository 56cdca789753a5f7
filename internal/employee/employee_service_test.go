package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"metaedge-portal/internal/employee"
	employeeerrors "metaedge-portal/internal/employee/errors"
	employeeMock "metaedge-portal/internal/employee/mock"
	"metaedge-portal/internal/principal"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)

	svc := employee.NewService(db, repo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	actor := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}

	t.Run("success - team_only with access teams", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		teamID := uuid.New().String()
		req := employee.CreateEmployeeRequest{
			FullName:    "Nadia Putri",
			Email:       "nadia@metaedge.example",
			Password:    "rahasia123",
			AccessLevel: principal.AccessTeamOnly,
			AccessTeams: []string{teamID},
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, req.FullName, e.FullName)
				assert.Equal(t, req.Email, e.Email)
				assert.Equal(t, "employee", e.Role)
				assert.True(t, e.IsActive)
				// Password tidak boleh tersimpan plaintext.
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(req.Password)))
				return nil
			})

		deps.repo.EXPECT().
			ReplaceAccessTeams(ctx, gomock.Any(), []string{teamID}).
			Return(nil)

		deps.redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, actor, req)
		assert.NoError(t, err)
		assert.Equal(t, []string{teamID}, resp.AccessTeams)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("fail - team_only without access teams", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, employee.CreateEmployeeRequest{
			FullName:    "Rafi",
			Email:       "rafi@metaedge.example",
			Password:    "rahasia123",
			AccessLevel: principal.AccessTeamOnly,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrAccessTeamsRequired)
	})

	t.Run("fail - duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"})

		_, err := deps.service.Create(ctx, actor, employee.CreateEmployeeRequest{
			FullName:    "Nadia Putri",
			Email:       "nadia@metaedge.example",
			Password:    "rahasia123",
			AccessLevel: principal.AccessFull,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss - loads from repo and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rows := []employee.Employee{
			{ID: uuid.New(), FullName: "Nadia Putri", Email: "nadia@metaedge.example", AccessLevel: principal.AccessTeamOnly, IsActive: true},
		}

		deps.redisMock.ExpectGet(employee.OptionsCacheKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return(rows, nil)

		expected := []employee.EmployeeResponse{
			{ID: rows[0].ID.String(), FullName: "Nadia Putri", Email: "nadia@metaedge.example", AccessLevel: principal.AccessTeamOnly, IsActive: true},
		}
		jsonData, _ := json.Marshal(expected)
		deps.redisMock.ExpectSet(employee.OptionsCacheKey, jsonData, 1*time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)
		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit - repo never touched", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.EmployeeResponse{
			{ID: uuid.New().String(), FullName: "Rafi Pratama", Email: "rafi@metaedge.example"},
		}
		jsonData, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(employee.OptionsCacheKey).SetVal(string(jsonData))

		resp, err := deps.service.GetOptions(ctx)
		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("access teams cleared when promoted to full", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().
			WithTx(gomock.Any()).
			Return(deps.repo)
		deps.repo.EXPECT().
			FindByID(ctx, id.String()).
			Return(&employee.Employee{ID: id, FullName: "Nadia Putri", AccessLevel: principal.AccessTeamOnly}, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, principal.AccessFull, e.AccessLevel)
				return nil
			})
		deps.repo.EXPECT().
			ReplaceAccessTeams(ctx, id.String(), gomock.Nil()).
			Return(nil)

		deps.redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			FullName:    "Nadia Putri",
			AccessLevel: principal.AccessFull,
		})
		assert.NoError(t, err)
		assert.Empty(t, resp.AccessTeams)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, "bukan-uuid", employee.UpdateEmployeeRequest{
			FullName:    "X",
			AccessLevel: principal.AccessFull,
		})
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_SetActive(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	deps.repo.EXPECT().SetActive(ctx, id.String(), false).Return(nil)
	deps.redisMock.ExpectDel(employee.OptionsCacheKey).SetVal(1)
	deps.repo.EXPECT().
		FindByID(ctx, id.String()).
		Return(&employee.Employee{ID: id, FullName: "Nadia Putri", IsActive: false}, nil)

	resp, err := deps.service.SetActive(ctx, id.String(), false)
	assert.NoError(t, err)
	assert.False(t, resp.IsActive)
}
