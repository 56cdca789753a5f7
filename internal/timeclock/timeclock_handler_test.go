package timeclock_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"metaedge-portal/internal/principal"
	"metaedge-portal/internal/timeclock"
	timeclockerrors "metaedge-portal/internal/timeclock/errors"
)

type fakeService struct {
	statusFn      func(ctx context.Context, employeeID string) (timeclock.StatusResponse, error)
	clockInFn     func(ctx context.Context, employeeID string, req timeclock.ClockInRequest) (timeclock.ClockEntryResponse, error)
	clockOutFn    func(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error)
	startBreakFn  func(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error)
	endBreakFn    func(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error)
	listEntriesFn func(ctx context.Context, p principal.Principal, req timeclock.ListEntriesRequest) ([]timeclock.ClockEntryResponse, error)
	weekSummaryFn func(ctx context.Context, p principal.Principal, employeeID, weekStart string) (timeclock.WeekSummaryResponse, error)
}

func (f *fakeService) Status(ctx context.Context, employeeID string) (timeclock.StatusResponse, error) {
	return f.statusFn(ctx, employeeID)
}
func (f *fakeService) ClockIn(ctx context.Context, employeeID string, req timeclock.ClockInRequest) (timeclock.ClockEntryResponse, error) {
	return f.clockInFn(ctx, employeeID, req)
}
func (f *fakeService) ClockOut(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error) {
	return f.clockOutFn(ctx, employeeID)
}
func (f *fakeService) StartBreak(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error) {
	return f.startBreakFn(ctx, employeeID)
}
func (f *fakeService) EndBreak(ctx context.Context, employeeID string) (timeclock.ClockEntryResponse, error) {
	return f.endBreakFn(ctx, employeeID)
}
func (f *fakeService) ListEntries(ctx context.Context, p principal.Principal, req timeclock.ListEntriesRequest) ([]timeclock.ClockEntryResponse, error) {
	return f.listEntriesFn(ctx, p, req)
}
func (f *fakeService) WeekSummary(ctx context.Context, p principal.Principal, employeeID, weekStart string) (timeclock.WeekSummaryResponse, error) {
	return f.weekSummaryFn(ctx, p, employeeID, weekStart)
}

func testContext(t *testing.T, p principal.Principal, method, target string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("principal", p)
	c.Request = httptest.NewRequest(method, target, nil)
	return w, c
}

func TestHandler_ClockIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	p := principal.Principal{ID: employeeID, AccessLevel: principal.AccessTeamOnly}

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req timeclock.ClockInRequest) (timeclock.ClockEntryResponse, error) {
			assert.Equal(t, employeeID, eid)
			return timeclock.ClockEntryResponse{ID: uuid.New().String(), EmployeeID: eid}, nil
		},
	}
	h := timeclock.NewHandler(svc)

	// Clock in tanpa body sama sekali tetap sah.
	w, c := testContext(t, p, http.MethodPost, "/clock/in")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "\"ok\":true")
}

func TestHandler_ClockIn_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessTeamOnly}

	svc := &fakeService{
		clockInFn: func(ctx context.Context, eid string, req timeclock.ClockInRequest) (timeclock.ClockEntryResponse, error) {
			return timeclock.ClockEntryResponse{}, timeclockerrors.ErrAlreadyClockedIn
		},
	}
	h := timeclock.NewHandler(svc)

	w, c := testContext(t, p, http.MethodPost, "/clock/in")
	h.ClockIn(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_ClockOut_NoOpenEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessTeamOnly}

	svc := &fakeService{
		clockOutFn: func(ctx context.Context, eid string) (timeclock.ClockEntryResponse, error) {
			return timeclock.ClockEntryResponse{}, timeclockerrors.ErrNoOpenEntry
		},
	}
	h := timeclock.NewHandler(svc)

	w, c := testContext(t, p, http.MethodPost, "/clock/out")
	h.ClockOut(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_ListEntries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessFull}

	svc := &fakeService{
		listEntriesFn: func(ctx context.Context, got principal.Principal, req timeclock.ListEntriesRequest) ([]timeclock.ClockEntryResponse, error) {
			assert.Equal(t, p.ID, got.ID)
			assert.Equal(t, "2026-03-02", req.StartDate)
			assert.Equal(t, "2026-03-08", req.EndDate)
			return []timeclock.ClockEntryResponse{{ID: uuid.New().String()}}, nil
		},
	}
	h := timeclock.NewHandler(svc)

	w, c := testContext(t, p, http.MethodGet, "/clock/entries?start_date=2026-03-02&end_date=2026-03-08")
	h.ListEntries(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_ListEntries_MissingRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := principal.Principal{ID: uuid.New().String(), AccessLevel: principal.AccessTeamOnly}

	h := timeclock.NewHandler(&fakeService{})

	w, c := testContext(t, p, http.MethodGet, "/clock/entries")
	h.ListEntries(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_MissingPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := timeclock.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/clock/status", nil)
	h.Status(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
