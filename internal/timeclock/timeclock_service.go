package timeclock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"metaedge-portal/internal/principal"
	timeclockerrors "metaedge-portal/internal/timeclock/errors"
)

//go:generate mockgen -source=timeclock_service.go -destination=mock/timeclock_service_mock.go -package=mock
type Service interface {
	Status(ctx context.Context, employeeID string) (StatusResponse, error)
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (ClockEntryResponse, error)
	ClockOut(ctx context.Context, employeeID string) (ClockEntryResponse, error)
	StartBreak(ctx context.Context, employeeID string) (ClockEntryResponse, error)
	EndBreak(ctx context.Context, employeeID string) (ClockEntryResponse, error)
	ListEntries(ctx context.Context, p principal.Principal, req ListEntriesRequest) ([]ClockEntryResponse, error)
	WeekSummary(ctx context.Context, p principal.Principal, employeeID, weekStart string) (WeekSummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeclock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclock.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Status(ctx context.Context, employeeID string) (StatusResponse, error) {
	open, err := s.repo.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusResponse{ClockedIn: false}, nil
		}
		return StatusResponse{}, err
	}

	now := time.Now().UTC()
	resp := mapToResponse(*open, now)
	onBreak := false
	for _, b := range open.Breaks {
		if b.EndAt == nil {
			onBreak = true
			break
		}
	}
	return StatusResponse{ClockedIn: true, OnBreak: onBreak, OpenEntry: &resp}, nil
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (ClockEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindOpenByEmployee(ctx, employeeID)
	if err == nil {
		return ClockEntryResponse{}, timeclockerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClockEntryResponse{}, err
	}

	now := time.Now().UTC()
	entry := &ClockEntry{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		EntryDate:  now.Truncate(24 * time.Hour),
		ClockIn:    now,
		Notes:      req.Notes,
	}

	// Index uq_clock_entries_open tetap menjaga race antara dua request.
	if err := qtx.Create(ctx, entry); err != nil {
		return ClockEntryResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ClockEntryResponse{}, err
	}

	s.logger.Info("clock in success",
		zap.String("employee_id", employeeID),
		zap.String("entry_id", entry.ID.String()),
	)
	return mapToResponse(*entry, now), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string) (ClockEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClockEntryResponse{}, timeclockerrors.ErrNoOpenEntry
		}
		return ClockEntryResponse{}, err
	}

	now := time.Now().UTC()

	for i := range entry.Breaks {
		if entry.Breaks[i].EndAt == nil {
			entry.Breaks[i].EndAt = &now
			if err := qtx.UpdateBreak(ctx, &entry.Breaks[i]); err != nil {
				return ClockEntryResponse{}, err
			}
		}
	}

	entry.ClockOut = &now
	if err := qtx.Update(ctx, entry); err != nil {
		return ClockEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClockEntryResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("employee_id", employeeID),
		zap.String("entry_id", entry.ID.String()),
	)
	return mapToResponse(*entry, now), nil
}

func (s *service) StartBreak(ctx context.Context, employeeID string) (ClockEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClockEntryResponse{}, timeclockerrors.ErrNoOpenEntry
		}
		return ClockEntryResponse{}, err
	}

	for _, b := range entry.Breaks {
		if b.EndAt == nil {
			return ClockEntryResponse{}, timeclockerrors.ErrAlreadyOnBreak
		}
	}

	now := time.Now().UTC()
	brk := &BreakInterval{
		ID:      uuid.New(),
		EntryID: entry.ID,
		StartAt: now,
	}
	if err := qtx.CreateBreak(ctx, brk); err != nil {
		return ClockEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ClockEntryResponse{}, err
	}

	entry.Breaks = append(entry.Breaks, *brk)
	return mapToResponse(*entry, now), nil
}

func (s *service) EndBreak(ctx context.Context, employeeID string) (ClockEntryResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ClockEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry, err := qtx.FindOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClockEntryResponse{}, timeclockerrors.ErrNoOpenEntry
		}
		return ClockEntryResponse{}, err
	}

	now := time.Now().UTC()
	closed := false
	for i := range entry.Breaks {
		if entry.Breaks[i].EndAt == nil {
			entry.Breaks[i].EndAt = &now
			if err := qtx.UpdateBreak(ctx, &entry.Breaks[i]); err != nil {
				return ClockEntryResponse{}, err
			}
			closed = true
			break
		}
	}
	if !closed {
		return ClockEntryResponse{}, timeclockerrors.ErrNoOpenBreak
	}
	if err := tx.Commit(); err != nil {
		return ClockEntryResponse{}, err
	}

	return mapToResponse(*entry, now), nil
}

func (s *service) ListEntries(ctx context.Context, p principal.Principal, req ListEntriesRequest) ([]ClockEntryResponse, error) {
	from, to, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var rows []ClockEntry
	switch {
	case p.IsFull() && req.EmployeeID == "":
		rows, err = s.repo.FindAllByRange(ctx, from, to)
	case p.IsFull():
		rows, err = s.repo.FindByEmployeeAndRange(ctx, req.EmployeeID, from, to)
	default:
		if req.EmployeeID != "" && req.EmployeeID != p.ID {
			return nil, timeclockerrors.ErrEmployeeScopeForbidden
		}
		rows, err = s.repo.FindByEmployeeAndRange(ctx, p.ID, from, to)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	resp := make([]ClockEntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e, now)
	}
	return resp, nil
}

func (s *service) WeekSummary(ctx context.Context, p principal.Principal, employeeID, weekStart string) (WeekSummaryResponse, error) {
	target := p.ID
	if employeeID != "" && employeeID != p.ID {
		if !p.IsFull() {
			return WeekSummaryResponse{}, timeclockerrors.ErrEmployeeScopeForbidden
		}
		target = employeeID
	}

	now := time.Now().UTC()
	start := mondayOf(now)
	if weekStart != "" {
		parsed, err := time.Parse("2006-01-02", weekStart)
		if err != nil {
			return WeekSummaryResponse{}, timeclockerrors.ErrInvalidDateRange
		}
		start = mondayOf(parsed)
	}
	end := start.AddDate(0, 0, 6)

	rows, err := s.repo.FindByEmployeeAndRange(ctx, target, start, end)
	if err != nil {
		return WeekSummaryResponse{}, err
	}

	byDay := make(map[string][]ClockEntryResponse)
	for _, e := range rows {
		r := mapToResponse(e, now)
		byDay[r.EntryDate] = append(byDay[r.EntryDate], r)
	}

	summary := WeekSummaryResponse{
		WeekStart: start.Format("2006-01-02"),
		WeekEnd:   end.Format("2006-01-02"),
		Days:      make([]DaySummary, 0, 7),
	}
	for d := 0; d < 7; d++ {
		day := start.AddDate(0, 0, d).Format("2006-01-02")
		entries := byDay[day]
		if entries == nil {
			entries = []ClockEntryResponse{}
		}
		var dayTotal int64
		for _, e := range entries {
			dayTotal += e.WorkedMinutes
		}
		summary.Days = append(summary.Days, DaySummary{
			Date:         day,
			Entries:      entries,
			TotalMinutes: dayTotal,
		})
		summary.WeekTotalMinutes += dayTotal
	}
	return summary, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, timeclockerrors.ErrInvalidDateRange
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, timeclockerrors.ErrInvalidDateRange
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, timeclockerrors.ErrInvalidDateRange
	}
	return from, to, nil
}

func mondayOf(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}

// entryDurations menghitung durasi dalam menit utuh (dibulatkan ke bawah,
// tidak pernah negatif). Entry yang masih terbuka diukur terhadap now.
func entryDurations(e ClockEntry, now time.Time) (total, brk, worked int64) {
	end := now
	if e.ClockOut != nil {
		end = *e.ClockOut
	}
	total = int64(end.Sub(e.ClockIn).Minutes())
	if total < 0 {
		total = 0
	}
	for _, b := range e.Breaks {
		bEnd := end
		if b.EndAt != nil {
			bEnd = *b.EndAt
		}
		m := int64(bEnd.Sub(b.StartAt).Minutes())
		if m > 0 {
			brk += m
		}
	}
	if brk > total {
		brk = total
	}
	worked = total - brk
	return total, brk, worked
}

func mapToResponse(e ClockEntry, now time.Time) ClockEntryResponse {
	total, brk, worked := entryDurations(e, now)

	resp := ClockEntryResponse{
		ID:            e.ID.String(),
		EmployeeID:    e.EmployeeID.String(),
		EntryDate:     e.EntryDate.Format("2006-01-02"),
		ClockIn:       e.ClockIn.Format(time.RFC3339),
		Notes:         e.Notes,
		Breaks:        make([]BreakResponse, 0, len(e.Breaks)),
		TotalMinutes:  total,
		BreakMinutes:  brk,
		WorkedMinutes: worked,
	}
	if e.ClockOut != nil {
		v := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	if e.Employee != nil {
		resp.EmployeeName = e.Employee.FullName
	}
	for _, b := range e.Breaks {
		br := BreakResponse{ID: b.ID.String(), StartAt: b.StartAt.Format(time.RFC3339)}
		if b.EndAt != nil {
			v := b.EndAt.Format(time.RFC3339)
			br.EndAt = &v
		}
		resp.Breaks = append(resp.Breaks, br)
	}
	return resp
}
