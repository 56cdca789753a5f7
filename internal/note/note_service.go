package note

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	noteerrors "metaedge-portal/internal/note/errors"
)

const defaultColor = "yellow"

//go:generate mockgen -source=note_service.go -destination=mock/note_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, employeeID string, req CreateNoteRequest) (NoteResponse, error)
	List(ctx context.Context, employeeID string) ([]NoteResponse, error)
	Update(ctx context.Context, employeeID, id string, req UpdateNoteRequest) (NoteResponse, error)
	TogglePin(ctx context.Context, employeeID, id string) (NoteResponse, error)
	Delete(ctx context.Context, employeeID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("note.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("note.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, employeeID string, req CreateNoteRequest) (NoteResponse, error) {
	color := req.Color
	if color == "" {
		color = defaultColor
	}

	n := &Note{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Title:      req.Title,
		Content:    req.Content,
		Color:      color,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create note persist failed", zap.Error(err))
		return NoteResponse{}, err
	}

	s.logger.Info("create note success",
		zap.String("note_id", n.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(*n), nil
}

func (s *service) List(ctx context.Context, employeeID string) ([]NoteResponse, error) {
	rows, err := s.repo.FindAllByOwner(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]NoteResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, employeeID, id string, req UpdateNoteRequest) (NoteResponse, error) {
	n, err := s.findOwned(ctx, employeeID, id)
	if err != nil {
		return NoteResponse{}, err
	}

	n.Title = req.Title
	n.Content = req.Content
	if req.Color != "" {
		n.Color = req.Color
	}

	if err := s.repo.Update(ctx, n); err != nil {
		s.logger.Error("update note persist failed", zap.Error(err))
		return NoteResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) TogglePin(ctx context.Context, employeeID, id string) (NoteResponse, error) {
	n, err := s.findOwned(ctx, employeeID, id)
	if err != nil {
		return NoteResponse{}, err
	}

	n.IsPinned = !n.IsPinned
	if err := s.repo.Update(ctx, n); err != nil {
		s.logger.Error("toggle pin persist failed", zap.Error(err))
		return NoteResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) Delete(ctx context.Context, employeeID, id string) error {
	if _, err := s.findOwned(ctx, employeeID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete note failed", zap.Error(err))
		return err
	}
	s.logger.Info("delete note success", zap.String("note_id", id))
	return nil
}

// findOwned mengembalikan NotFound untuk catatan milik orang lain,
// bukan Forbidden, supaya keberadaan catatan tidak bocor.
func (s *service) findOwned(ctx context.Context, employeeID, id string) (*Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, noteerrors.ErrInvalidNoteID
	}
	n, err := s.repo.FindByIDAndOwner(ctx, id, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, noteerrors.ErrNoteNotFound
		}
		return nil, err
	}
	return n, nil
}

func mapToResponse(n Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Content:   n.Content,
		Color:     n.Color,
		IsPinned:  n.IsPinned,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
}
