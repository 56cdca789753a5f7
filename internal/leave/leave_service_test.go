package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"metaedge-portal/internal/events"
	leaveerrors "metaedge-portal/internal/leave/errors"
	"metaedge-portal/internal/messaging/kafka"
	"metaedge-portal/internal/principal"
)

type fakeRepo struct {
	createFn            func(ctx context.Context, l *LeaveRequest) error
	updateFn            func(ctx context.Context, l *LeaveRequest) error
	findByIDFn          func(ctx context.Context, id string) (*LeaveRequest, error)
	findAllByEmployeeFn func(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	findAllFn           func(ctx context.Context, statusFilter string) ([]LeaveRequest, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                      { return f }
func (f *fakeRepo) Create(ctx context.Context, l *LeaveRequest) error { return f.createFn(ctx, l) }
func (f *fakeRepo) Update(ctx context.Context, l *LeaveRequest) error { return f.updateFn(ctx, l) }
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	return f.findAllByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindAll(ctx context.Context, statusFilter string) ([]LeaveRequest, error) {
	return f.findAllFn(ctx, statusFilter)
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestService_Apply(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	var saved LeaveRequest
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, l *LeaveRequest) error { saved = *l; return nil }

	svc := NewService(db, repo, nil)
	p := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessTeamOnly}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Apply(context.Background(), p, ApplyLeaveRequest{
		LeaveType: "annual",
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Reason:    "family trip",
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, "annual", saved.LeaveType)
	assert.Equal(t, p.ID, saved.EmployeeID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Apply_InvalidPeriod(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	svc := NewService(db, &fakeRepo{}, nil)
	p := principal.Principal{ID: uuid.New().String()}

	_, err := svc.Apply(context.Background(), p, ApplyLeaveRequest{
		LeaveType: "annual",
		StartDate: "2026-09-11",
		EndDate:   "2026-09-07",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)

	_, err = svc.Apply(context.Background(), p, ApplyLeaveRequest{
		LeaveType: "annual",
		StartDate: "7 September 2026",
		EndDate:   "2026-09-11",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
}

func TestService_Decide_Approve(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	leaveID := uuid.New()
	employeeID := uuid.New()
	stored := &LeaveRequest{
		ID:         leaveID,
		EmployeeID: employeeID,
		LeaveType:  "annual",
		StartDate:  time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		Status:     StatusPending,
	}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return stored, nil }
	repo.updateFn = func(ctx context.Context, l *LeaveRequest) error { return nil }

	outbox := &fakeOutbox{}
	svc := NewService(db, repo, outbox)
	approver := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Decide(context.Background(), approver, leaveID.String(), DecideLeaveRequest{Status: StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.NotNil(t, resp.DecidedAt)
	assert.NotNil(t, resp.DecidedBy)
	assert.Equal(t, approver.ID, *resp.DecidedBy)

	// Event keputusan harus tercatat di outbox dalam transaksi yang sama.
	assert.Len(t, outbox.created, 1)
	ev := outbox.created[0]
	assert.Equal(t, "leave_request", ev.AggregateType)
	assert.Equal(t, leaveID.String(), ev.AggregateID)
	assert.Equal(t, events.LeaveDecidedTopic, ev.Topic)

	var payload events.LeaveDecidedEvent
	assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "leave_decided", payload.EventType)
	assert.Equal(t, StatusApproved, payload.Status)
	assert.Equal(t, employeeID.String(), payload.EmployeeID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_AlreadyDecided(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) {
		return &LeaveRequest{ID: uuid.New(), EmployeeID: uuid.New(), Status: StatusRejected}, nil
	}

	svc := NewService(db, repo, &fakeOutbox{})
	approver := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(context.Background(), approver, uuid.New().String(), DecideLeaveRequest{Status: StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveAlreadyDecided)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo, &fakeOutbox{})
	approver := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Decide(context.Background(), approver, uuid.New().String(), DecideLeaveRequest{Status: StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestService_GetByID_Visibility(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ownerID := uuid.New()
	stored := &LeaveRequest{ID: uuid.New(), EmployeeID: ownerID, Status: StatusPending}

	repo := &fakeRepo{}
	repo.findByIDFn = func(ctx context.Context, id string) (*LeaveRequest, error) { return stored, nil }

	svc := NewService(db, repo, nil)
	ctx := context.Background()

	owner := principal.Principal{ID: ownerID.String(), AccessLevel: principal.AccessTeamOnly}
	_, err := svc.GetByID(ctx, owner, stored.ID.String())
	assert.NoError(t, err)

	stranger := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessTeamOnly}
	_, err = svc.GetByID(ctx, stranger, stored.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)

	admin := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}
	_, err = svc.GetByID(ctx, admin, stored.ID.String())
	assert.NoError(t, err)
}

func TestService_ListAll_StatusFilter(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.findAllFn = func(ctx context.Context, statusFilter string) ([]LeaveRequest, error) {
		return []LeaveRequest{{ID: uuid.New(), EmployeeID: uuid.New(), Status: statusFilter}}, nil
	}

	svc := NewService(db, repo, nil)

	rows, err := svc.ListAll(context.Background(), StatusPending)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.ListAll(context.Background(), "cancelled")
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
}
