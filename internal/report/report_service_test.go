package report

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"metaedge-portal/internal/principal"
	reporterrors "metaedge-portal/internal/report/errors"
	"metaedge-portal/internal/storage"
	storagemock "metaedge-portal/internal/storage/mock"
)

type fakeRepo struct {
	createWeeklyFn    func(ctx context.Context, r *WeeklyReport) error
	updateWeeklyFn    func(ctx context.Context, r *WeeklyReport) error
	deleteWeeklyFn    func(ctx context.Context, id string) error
	findWeeklyByIDFn  func(ctx context.Context, id string) (*WeeklyReport, error)
	findWeeklyFn      func(ctx context.Context, scope Scope, filter ListFilter) ([]WeeklyReport, error)
	createMonthlyFn   func(ctx context.Context, r *MonthlyReport) error
	updateMonthlyFn   func(ctx context.Context, r *MonthlyReport) error
	deleteMonthlyFn   func(ctx context.Context, id string) error
	findMonthlyByIDFn func(ctx context.Context, id string) (*MonthlyReport, error)
	findMonthlyFn     func(ctx context.Context, scope Scope, filter ListFilter) ([]MonthlyReport, error)
	teamExistsFn      func(ctx context.Context, teamID string) (bool, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }
func (f *fakeRepo) CreateWeekly(ctx context.Context, r *WeeklyReport) error {
	return f.createWeeklyFn(ctx, r)
}
func (f *fakeRepo) UpdateWeekly(ctx context.Context, r *WeeklyReport) error {
	return f.updateWeeklyFn(ctx, r)
}
func (f *fakeRepo) DeleteWeekly(ctx context.Context, id string) error {
	return f.deleteWeeklyFn(ctx, id)
}
func (f *fakeRepo) FindWeeklyByID(ctx context.Context, id string) (*WeeklyReport, error) {
	return f.findWeeklyByIDFn(ctx, id)
}
func (f *fakeRepo) FindWeekly(ctx context.Context, scope Scope, filter ListFilter) ([]WeeklyReport, error) {
	return f.findWeeklyFn(ctx, scope, filter)
}
func (f *fakeRepo) CreateMonthly(ctx context.Context, r *MonthlyReport) error {
	return f.createMonthlyFn(ctx, r)
}
func (f *fakeRepo) UpdateMonthly(ctx context.Context, r *MonthlyReport) error {
	return f.updateMonthlyFn(ctx, r)
}
func (f *fakeRepo) DeleteMonthly(ctx context.Context, id string) error {
	return f.deleteMonthlyFn(ctx, id)
}
func (f *fakeRepo) FindMonthlyByID(ctx context.Context, id string) (*MonthlyReport, error) {
	return f.findMonthlyByIDFn(ctx, id)
}
func (f *fakeRepo) FindMonthly(ctx context.Context, scope Scope, filter ListFilter) ([]MonthlyReport, error) {
	return f.findMonthlyFn(ctx, scope, filter)
}
func (f *fakeRepo) TeamExists(ctx context.Context, teamID string) (bool, error) {
	return f.teamExistsFn(ctx, teamID)
}

func fullPrincipal() principal.Principal {
	return principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}
}

func TestService_Create_BodyOrAttachmentRequired(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	svc := NewService(db, &fakeRepo{}, client, nil)

	_, err := svc.Create(context.Background(), fullPrincipal(), CreateReportInput{
		Kind:      KindWeekly,
		TeamID:    uuid.New().String(),
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
	})
	assert.ErrorIs(t, err, reporterrors.ErrBodyOrAttachmentRequired)
}

func TestService_Create_WithAttachment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{PublicPath: "/files/reports/recap.pdf"}, nil)

	var saved WeeklyReport
	repo := &fakeRepo{}
	repo.teamExistsFn = func(ctx context.Context, id string) (bool, error) { return true, nil }
	repo.createWeeklyFn = func(ctx context.Context, r *WeeklyReport) error { saved = *r; return nil }

	svc := NewService(db, repo, client, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), fullPrincipal(), CreateReportInput{
		Kind:      KindWeekly,
		TeamID:    uuid.New().String(),
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		FileName:  "recap.pdf",
		FileData:  []byte("%PDF-1.7"),
	})
	assert.NoError(t, err)
	assert.Empty(t, resp.Warning)
	assert.NotNil(t, saved.AttachmentPath)
	assert.Equal(t, "/files/reports/recap.pdf", *saved.AttachmentPath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_UploadDegradedWithBody(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{}, errors.New("storage unreachable"))

	var saved MonthlyReport
	repo := &fakeRepo{}
	repo.teamExistsFn = func(ctx context.Context, id string) (bool, error) { return true, nil }
	repo.createMonthlyFn = func(ctx context.Context, r *MonthlyReport) error { saved = *r; return nil }

	svc := NewService(db, repo, client, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), fullPrincipal(), CreateReportInput{
		Kind:     KindMonthly,
		TeamID:   uuid.New().String(),
		Body:     "Recap bulan Agustus: 3 kampanye live.",
		Month:    "2026-08",
		FileName: "recap.xlsx",
		FileData: []byte("broken"),
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Warning)
	assert.Nil(t, saved.AttachmentPath)
	assert.Equal(t, "Recap bulan Agustus: 3 kampanye live.", saved.Body)
}

func TestService_Create_UploadFailedWithoutBody(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{}, errors.New("storage unreachable"))

	svc := NewService(db, &fakeRepo{}, client, nil)

	_, err := svc.Create(context.Background(), fullPrincipal(), CreateReportInput{
		Kind:      KindWeekly,
		TeamID:    uuid.New().String(),
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		FileName:  "recap.pdf",
		FileData:  []byte("%PDF-1.7"),
	})
	assert.ErrorIs(t, err, reporterrors.ErrAttachmentUpload)
}

func TestService_Create_FileTooLarge(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{}, storage.ErrFileTooLarge)

	svc := NewService(db, &fakeRepo{}, client, nil)

	// Batas ukuran tidak boleh terdegradasi walau body ada.
	_, err := svc.Create(context.Background(), fullPrincipal(), CreateReportInput{
		Kind:      KindWeekly,
		TeamID:    uuid.New().String(),
		Body:      "ada body",
		WeekStart: "2026-08-24",
		WeekEnd:   "2026-08-30",
		FileName:  "huge.mov",
		FileData:  []byte("x"),
	})
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)
}

func TestService_Create_TeamForbidden(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	svc := NewService(db, &fakeRepo{}, client, nil)
	p := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{uuid.New().String()},
	}

	_, err := svc.Create(context.Background(), p, CreateReportInput{
		Kind:   KindMonthly,
		TeamID: uuid.New().String(),
		Body:   "recap",
		Month:  "2026-08",
	})
	assert.ErrorIs(t, err, reporterrors.ErrTeamForbidden)
}

func TestService_Update_InvariantAfterRemoveAttachment(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	owner := uuid.New()
	path := "/files/reports/recap.pdf"
	stored := &WeeklyReport{
		ID:             uuid.New(),
		EmployeeID:     owner,
		TeamID:         uuid.New(),
		AttachmentPath: &path,
		WeekStart:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		WeekEnd:        time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeRepo{}
	repo.findWeeklyByIDFn = func(ctx context.Context, id string) (*WeeklyReport, error) {
		cp := *stored
		return &cp, nil
	}

	svc := NewService(db, repo, client, nil)
	p := principal.Principal{ID: owner.String(), AccessLevel: principal.AccessTeamOnly}

	// Lampiran satu-satunya isi; menghapusnya tanpa body baru harus ditolak.
	_, err := svc.Update(context.Background(), p, KindWeekly, stored.ID.String(), UpdateReportInput{
		RemoveAttachment: true,
	})
	assert.ErrorIs(t, err, reporterrors.ErrBodyOrAttachmentRequired)

	repo.updateWeeklyFn = func(ctx context.Context, r *WeeklyReport) error { *stored = *r; return nil }
	resp, err := svc.Update(context.Background(), p, KindWeekly, stored.ID.String(), UpdateReportInput{
		Body:             "diganti body",
		RemoveAttachment: true,
	})
	assert.NoError(t, err)
	assert.Nil(t, resp.AttachmentPath)
	assert.Equal(t, "diganti body", resp.Body)
}

func TestService_Update_ReplacesAttachment(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{PublicPath: "/files/reports/recap-v2.pdf"}, nil)

	owner := uuid.New()
	oldPath := "/files/reports/recap.pdf"
	stored := &WeeklyReport{
		ID:             uuid.New(),
		EmployeeID:     owner,
		TeamID:         uuid.New(),
		AttachmentPath: &oldPath,
		WeekStart:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		WeekEnd:        time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeRepo{}
	repo.findWeeklyByIDFn = func(ctx context.Context, id string) (*WeeklyReport, error) {
		cp := *stored
		return &cp, nil
	}
	repo.updateWeeklyFn = func(ctx context.Context, r *WeeklyReport) error { *stored = *r; return nil }

	svc := NewService(db, repo, client, nil)
	p := principal.Principal{ID: owner.String(), AccessLevel: principal.AccessTeamOnly}

	resp, err := svc.Update(context.Background(), p, KindWeekly, stored.ID.String(), UpdateReportInput{
		FileName: "recap-v2.pdf",
		FileData: []byte("%PDF-1.7"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, resp.AttachmentPath)
	assert.Equal(t, "/files/reports/recap-v2.pdf", *resp.AttachmentPath)
}

func TestService_Update_UploadFailureKeepsReport(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)
	client.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(storage.UploadResult{}, errors.New("storage unavailable"))

	owner := uuid.New()
	stored := &WeeklyReport{
		ID:         uuid.New(),
		EmployeeID: owner,
		TeamID:     uuid.New(),
		Body:       "laporan lama",
		WeekStart:  time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		WeekEnd:    time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	}

	repo := &fakeRepo{}
	repo.findWeeklyByIDFn = func(ctx context.Context, id string) (*WeeklyReport, error) {
		cp := *stored
		return &cp, nil
	}
	repo.updateWeeklyFn = func(ctx context.Context, r *WeeklyReport) error {
		t.Fatal("report must not be written when the replacement upload fails")
		return nil
	}

	svc := NewService(db, repo, client, nil)
	p := principal.Principal{ID: owner.String(), AccessLevel: principal.AccessTeamOnly}

	// Berbeda dengan Create: di sini tidak ada degradasi, ganti lampiran
	// yang gagal harus membatalkan seluruh update.
	_, err := svc.Update(context.Background(), p, KindWeekly, stored.ID.String(), UpdateReportInput{
		Body:     "body baru",
		FileName: "recap-v2.pdf",
		FileData: []byte("%PDF-1.7"),
	})
	assert.ErrorIs(t, err, reporterrors.ErrAttachmentUpload)
	assert.Equal(t, "laporan lama", stored.Body)
}

func TestService_Update_NotOwner(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	owner := uuid.New()
	teamID := uuid.New()
	repo := &fakeRepo{}
	repo.findMonthlyByIDFn = func(ctx context.Context, id string) (*MonthlyReport, error) {
		return &MonthlyReport{ID: uuid.New(), EmployeeID: owner, TeamID: teamID, Body: "recap", Month: "2026-08"}, nil
	}

	svc := NewService(db, repo, client, nil)
	teammate := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{teamID.String()},
	}

	// Satu tim boleh membaca tapi tidak mengubah milik orang lain.
	_, err := svc.Update(context.Background(), teammate, KindMonthly, uuid.New().String(), UpdateReportInput{Body: "edit"})
	assert.ErrorIs(t, err, reporterrors.ErrNotOwner)

	err = svc.Delete(context.Background(), teammate, KindMonthly, uuid.New().String())
	assert.ErrorIs(t, err, reporterrors.ErrNotOwner)
}

func TestService_GetByID_OutOfScopeHidden(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	repo := &fakeRepo{}
	repo.findWeeklyByIDFn = func(ctx context.Context, id string) (*WeeklyReport, error) {
		return &WeeklyReport{ID: uuid.New(), EmployeeID: uuid.New(), TeamID: uuid.New(), Body: "recap"}, nil
	}

	svc := NewService(db, repo, client, nil)
	outsider := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{uuid.New().String()},
	}

	_, err := svc.GetByID(context.Background(), outsider, KindWeekly, uuid.New().String())
	assert.ErrorIs(t, err, reporterrors.ErrReportNotFound)
}

func TestService_List_ScopeFor(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer db.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	client := storagemock.NewMockClient(ctrl)

	var gotScope Scope
	repo := &fakeRepo{}
	repo.findWeeklyFn = func(ctx context.Context, scope Scope, filter ListFilter) ([]WeeklyReport, error) {
		gotScope = scope
		return nil, nil
	}

	svc := NewService(db, repo, client, nil)

	_, err := svc.List(context.Background(), fullPrincipal(), KindWeekly, ListFilter{})
	assert.NoError(t, err)
	assert.True(t, gotScope.All)

	teamID := uuid.New().String()
	member := principal.Principal{
		ID:          uuid.New().String(),
		AccessLevel: principal.AccessTeamOnly,
		AccessTeams: []string{teamID},
	}
	_, err = svc.List(context.Background(), member, KindWeekly, ListFilter{})
	assert.NoError(t, err)
	assert.False(t, gotScope.All)
	assert.Equal(t, member.ID, gotScope.EmployeeID)
	assert.Equal(t, []string{teamID}, gotScope.TeamIDs)

	_, err = svc.List(context.Background(), member, "daily", ListFilter{})
	assert.ErrorIs(t, err, reporterrors.ErrInvalidKind)
}

func TestValidateMonthAndWeekPeriod(t *testing.T) {
	assert.NoError(t, validateMonth("2026-08"))
	assert.ErrorIs(t, validateMonth("Agustus 2026"), reporterrors.ErrInvalidMonthPeriod)
	assert.ErrorIs(t, validateMonth("2026-08-15"), reporterrors.ErrInvalidMonthPeriod)

	_, _, err := parseWeekPeriod("2026-08-24", "2026-08-30")
	assert.NoError(t, err)
	_, _, err = parseWeekPeriod("2026-08-30", "2026-08-24")
	assert.ErrorIs(t, err, reporterrors.ErrInvalidWeekPeriod)
}
