package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"metaedge-portal/internal/events"
	"metaedge-portal/internal/messaging/kafka"
	"metaedge-portal/internal/principal"
	reporterrors "metaedge-portal/internal/report/errors"
	"metaedge-portal/internal/shared/contextutil"
	"metaedge-portal/internal/storage"
)

const uploadDegradedWarning = "attachment upload failed, report was saved with the body only"

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, in CreateReportInput) (ReportResponse, error)
	List(ctx context.Context, p principal.Principal, kind string, filter ListFilter) ([]ReportResponse, error)
	GetByID(ctx context.Context, p principal.Principal, kind, id string) (ReportResponse, error)
	Update(ctx context.Context, p principal.Principal, kind, id string, in UpdateReportInput) (ReportResponse, error)
	Delete(ctx context.Context, p principal.Principal, kind, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	storage storage.Client
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	storageClient storage.Client,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{db: db, repo: repo, storage: storageClient, outbox: outboxRepo, logger: l}
}

func (s *service) Create(ctx context.Context, p principal.Principal, in CreateReportInput) (ReportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create report requested",
		zap.String("request_id", rid),
		zap.String("kind", in.Kind),
		zap.String("employee_id", p.ID),
		zap.String("team_id", in.TeamID),
	)

	if in.Kind != KindWeekly && in.Kind != KindMonthly {
		return ReportResponse{}, reporterrors.ErrInvalidKind
	}
	if !p.CanAccessTeam(in.TeamID) {
		return ReportResponse{}, reporterrors.ErrTeamForbidden
	}

	hasBody := strings.TrimSpace(in.Body) != ""
	hasFile := len(in.FileData) > 0
	if !hasBody && !hasFile {
		return ReportResponse{}, reporterrors.ErrBodyOrAttachmentRequired
	}

	var attachmentPath *string
	warning := ""
	if hasFile {
		result, err := s.storage.Upload(ctx, storage.UploadRequest{
			FileName:    in.FileName,
			ContentType: in.ContentType,
			Data:        in.FileData,
		})
		switch {
		case err == nil:
			attachmentPath = &result.PublicPath
		case errors.Is(err, storage.ErrFileTooLarge):
			return ReportResponse{}, err
		case hasBody:
			// Laporan tetap tersimpan dengan body saja.
			s.logger.Warn("attachment upload degraded",
				zap.String("request_id", rid),
				zap.String("file_name", in.FileName),
				zap.Error(err),
			)
			warning = uploadDegradedWarning
		default:
			s.logger.Error("attachment upload failed without body fallback", zap.Error(err))
			return ReportResponse{}, reporterrors.ErrAttachmentUpload
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create report begin tx failed", zap.Error(err))
		return ReportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	teamExists, err := qtx.TeamExists(ctx, in.TeamID)
	if err != nil {
		return ReportResponse{}, err
	}
	if !teamExists {
		return ReportResponse{}, reporterrors.ErrTeamForbidden
	}

	var (
		reportID uuid.UUID
		resp     ReportResponse
	)
	switch in.Kind {
	case KindWeekly:
		weekStart, weekEnd, err := parseWeekPeriod(in.WeekStart, in.WeekEnd)
		if err != nil {
			return ReportResponse{}, err
		}
		w := &WeeklyReport{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(p.ID),
			TeamID:         uuid.MustParse(in.TeamID),
			Title:          in.Title,
			Body:           in.Body,
			AttachmentPath: attachmentPath,
			WeekStart:      weekStart,
			WeekEnd:        weekEnd,
		}
		if err := qtx.CreateWeekly(ctx, w); err != nil {
			s.logger.Error("create weekly report persist failed", zap.Error(err))
			return ReportResponse{}, err
		}
		reportID = w.ID
		resp = mapWeekly(*w)
	case KindMonthly:
		if err := validateMonth(in.Month); err != nil {
			return ReportResponse{}, err
		}
		m := &MonthlyReport{
			ID:             uuid.New(),
			EmployeeID:     uuid.MustParse(p.ID),
			TeamID:         uuid.MustParse(in.TeamID),
			Title:          in.Title,
			Body:           in.Body,
			AttachmentPath: attachmentPath,
			Month:          in.Month,
		}
		if err := qtx.CreateMonthly(ctx, m); err != nil {
			s.logger.Error("create monthly report persist failed", zap.Error(err))
			return ReportResponse{}, err
		}
		reportID = m.ID
		resp = mapMonthly(*m)
	}

	if s.outbox != nil {
		event := events.ReportSubmittedEvent{
			EventType:  "report_submitted",
			RequestID:  rid,
			ReportID:   reportID.String(),
			Kind:       in.Kind,
			EmployeeID: p.ID,
			TeamID:     in.TeamID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return ReportResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "report",
			AggregateID:   reportID.String(),
			EventType:     event.EventType,
			Topic:         events.ReportSubmittedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create report outbox persist failed", zap.Error(err))
			return ReportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create report commit failed", zap.Error(err))
		return ReportResponse{}, err
	}

	s.logger.Info("create report success",
		zap.String("report_id", reportID.String()),
		zap.String("kind", in.Kind),
		zap.Bool("degraded", warning != ""),
	)
	resp.Warning = warning
	return resp, nil
}

func (s *service) List(ctx context.Context, p principal.Principal, kind string, filter ListFilter) ([]ReportResponse, error) {
	scope := scopeFor(p)

	switch kind {
	case KindWeekly:
		rows, err := s.repo.FindWeekly(ctx, scope, filter)
		if err != nil {
			return nil, err
		}
		resp := make([]ReportResponse, len(rows))
		for i, w := range rows {
			resp[i] = mapWeekly(w)
		}
		return resp, nil
	case KindMonthly:
		rows, err := s.repo.FindMonthly(ctx, scope, filter)
		if err != nil {
			return nil, err
		}
		resp := make([]ReportResponse, len(rows))
		for i, m := range rows {
			resp[i] = mapMonthly(m)
		}
		return resp, nil
	default:
		return nil, reporterrors.ErrInvalidKind
	}
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, kind, id string) (ReportResponse, error) {
	resp, _, _, err := s.findVisible(ctx, p, kind, id)
	return resp, err
}

func (s *service) Update(ctx context.Context, p principal.Principal, kind, id string, in UpdateReportInput) (ReportResponse, error) {
	resp, weekly, monthly, err := s.findVisible(ctx, p, kind, id)
	if err != nil {
		return ReportResponse{}, err
	}

	if !p.IsFull() && !p.Owns(resp.EmployeeID) {
		return ReportResponse{}, reporterrors.ErrNotOwner
	}

	// Lampiran baru diunggah dulu; kalau gagal, laporan lama tidak
	// boleh berubah. Tidak ada degradasi di sini karena pemanggil
	// memang minta lampirannya diganti.
	var newAttachment *string
	if len(in.FileData) > 0 {
		result, err := s.storage.Upload(ctx, storage.UploadRequest{
			FileName:    in.FileName,
			ContentType: in.ContentType,
			Data:        in.FileData,
		})
		if err != nil {
			if errors.Is(err, storage.ErrFileTooLarge) {
				return ReportResponse{}, err
			}
			s.logger.Error("replace attachment upload failed",
				zap.String("report_id", id),
				zap.String("file_name", in.FileName),
				zap.Error(err),
			)
			return ReportResponse{}, reporterrors.ErrAttachmentUpload
		}
		newAttachment = &result.PublicPath
	}

	switch kind {
	case KindWeekly:
		weekly.Title = in.Title
		weekly.Body = in.Body
		if newAttachment != nil {
			weekly.AttachmentPath = newAttachment
		} else if in.RemoveAttachment {
			weekly.AttachmentPath = nil
		}
		if strings.TrimSpace(weekly.Body) == "" && weekly.AttachmentPath == nil {
			return ReportResponse{}, reporterrors.ErrBodyOrAttachmentRequired
		}
		if err := s.repo.UpdateWeekly(ctx, weekly); err != nil {
			s.logger.Error("update weekly report persist failed", zap.Error(err))
			return ReportResponse{}, err
		}
		return mapWeekly(*weekly), nil
	default:
		monthly.Title = in.Title
		monthly.Body = in.Body
		if newAttachment != nil {
			monthly.AttachmentPath = newAttachment
		} else if in.RemoveAttachment {
			monthly.AttachmentPath = nil
		}
		if strings.TrimSpace(monthly.Body) == "" && monthly.AttachmentPath == nil {
			return ReportResponse{}, reporterrors.ErrBodyOrAttachmentRequired
		}
		if err := s.repo.UpdateMonthly(ctx, monthly); err != nil {
			s.logger.Error("update monthly report persist failed", zap.Error(err))
			return ReportResponse{}, err
		}
		return mapMonthly(*monthly), nil
	}
}

func (s *service) Delete(ctx context.Context, p principal.Principal, kind, id string) error {
	resp, _, _, err := s.findVisible(ctx, p, kind, id)
	if err != nil {
		return err
	}
	if !p.IsFull() && !p.Owns(resp.EmployeeID) {
		return reporterrors.ErrNotOwner
	}

	switch kind {
	case KindWeekly:
		err = s.repo.DeleteWeekly(ctx, id)
	default:
		err = s.repo.DeleteMonthly(ctx, id)
	}
	if err != nil {
		s.logger.Error("delete report failed", zap.String("report_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete report success",
		zap.String("report_id", id),
		zap.String("kind", kind),
		zap.String("actor_id", p.ID),
	)
	return nil
}

// findVisible memuat laporan dan menyembunyikan baris di luar cakupan
// principal sebagai NotFound.
func (s *service) findVisible(ctx context.Context, p principal.Principal, kind, id string) (ReportResponse, *WeeklyReport, *MonthlyReport, error) {
	if kind != KindWeekly && kind != KindMonthly {
		return ReportResponse{}, nil, nil, reporterrors.ErrInvalidKind
	}
	if _, err := uuid.Parse(id); err != nil {
		return ReportResponse{}, nil, nil, reporterrors.ErrInvalidReportID
	}

	var (
		resp    ReportResponse
		weekly  *WeeklyReport
		monthly *MonthlyReport
	)
	switch kind {
	case KindWeekly:
		w, err := s.repo.FindWeeklyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ReportResponse{}, nil, nil, reporterrors.ErrReportNotFound
			}
			return ReportResponse{}, nil, nil, err
		}
		weekly = w
		resp = mapWeekly(*w)
	case KindMonthly:
		m, err := s.repo.FindMonthlyByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ReportResponse{}, nil, nil, reporterrors.ErrReportNotFound
			}
			return ReportResponse{}, nil, nil, err
		}
		monthly = m
		resp = mapMonthly(*m)
	}

	if !p.IsFull() && !p.Owns(resp.EmployeeID) && !p.CanAccessTeam(resp.TeamID) {
		return ReportResponse{}, nil, nil, reporterrors.ErrReportNotFound
	}
	return resp, weekly, monthly, nil
}

func scopeFor(p principal.Principal) Scope {
	if p.IsFull() {
		return Scope{All: true}
	}
	return Scope{EmployeeID: p.ID, TeamIDs: p.AccessTeams}
}

func parseWeekPeriod(start, end string) (time.Time, time.Time, error) {
	weekStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidWeekPeriod
	}
	weekEnd, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidWeekPeriod
	}
	if weekEnd.Before(weekStart) {
		return time.Time{}, time.Time{}, reporterrors.ErrInvalidWeekPeriod
	}
	return weekStart, weekEnd, nil
}

func validateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return reporterrors.ErrInvalidMonthPeriod
	}
	return nil
}

func mapWeekly(w WeeklyReport) ReportResponse {
	resp := ReportResponse{
		ID:             w.ID.String(),
		Kind:           KindWeekly,
		EmployeeID:     w.EmployeeID.String(),
		TeamID:         w.TeamID.String(),
		Title:          w.Title,
		Body:           w.Body,
		AttachmentPath: w.AttachmentPath,
		WeekStart:      w.WeekStart.Format("2006-01-02"),
		WeekEnd:        w.WeekEnd.Format("2006-01-02"),
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
	if w.Employee != nil {
		resp.EmployeeName = w.Employee.FullName
	}
	return resp
}

func mapMonthly(m MonthlyReport) ReportResponse {
	resp := ReportResponse{
		ID:             m.ID.String(),
		Kind:           KindMonthly,
		EmployeeID:     m.EmployeeID.String(),
		TeamID:         m.TeamID.String(),
		Title:          m.Title,
		Body:           m.Body,
		AttachmentPath: m.AttachmentPath,
		Month:          m.Month,
		CreatedAt:      m.CreatedAt.Format(time.RFC3339),
	}
	if m.Employee != nil {
		resp.EmployeeName = m.Employee.FullName
	}
	return resp
}
