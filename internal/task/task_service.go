package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"metaedge-portal/internal/principal"
	"metaedge-portal/internal/shared/counter"
	taskerrors "metaedge-portal/internal/task/errors"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateTaskRequest) (TaskResponse, error)
	ListByTeam(ctx context.Context, p principal.Principal, teamID string) ([]TaskResponse, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (TaskResponse, error)
	Update(ctx context.Context, p principal.Principal, id string, req UpdateTaskRequest) (TaskResponse, error)
	UpdateStatus(ctx context.Context, p principal.Principal, id, newStatus string) (TaskResponse, error)
	Delete(ctx context.Context, p principal.Principal, id string) error
	AddComment(ctx context.Context, p principal.Principal, taskID string, req AddCommentRequest) (CommentResponse, error)
	ListComments(ctx context.Context, p principal.Principal, taskID string) ([]CommentResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, counter: counterRepo, logger: l}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateTaskRequest) (TaskResponse, error) {
	s.logger.Debug("create task requested",
		zap.String("actor_id", p.ID),
		zap.String("team_id", req.TeamID),
		zap.String("title", req.Title),
	)

	if !p.CanAccessTeam(req.TeamID) {
		return TaskResponse{}, taskerrors.ErrTeamForbidden
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	teamExists, err := qtx.TeamExists(ctx, req.TeamID)
	if err != nil {
		return TaskResponse{}, err
	}
	if !teamExists {
		return TaskResponse{}, taskerrors.ErrTeamNotFound
	}

	var assigneeID *uuid.UUID
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		exists, err := qtx.EmployeeExists(ctx, *req.AssigneeID)
		if err != nil {
			return TaskResponse{}, err
		}
		if !exists {
			return TaskResponse{}, taskerrors.ErrAssigneeNotFound
		}
		id := uuid.MustParse(*req.AssigneeID)
		assigneeID = &id
	}

	number, err := s.counter.GetNextValue(ctx, req.TeamID, "task_number")
	if err != nil {
		s.logger.Error("create task generate number failed", zap.Error(err))
		return TaskResponse{}, err
	}

	t := &Task{
		ID:          uuid.New(),
		Number:      number,
		TeamID:      uuid.MustParse(req.TeamID),
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  assigneeID,
		CreatedBy:   uuid.MustParse(p.ID),
		Status:      StatusTodo,
		Priority:    priority,
		DueDate:     dueDate,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success",
		zap.String("task_id", t.ID.String()),
		zap.String("team_id", req.TeamID),
		zap.String("task_number", fmt.Sprintf("TSK-%d", number)),
	)
	return mapToResponse(*t), nil
}

func (s *service) ListByTeam(ctx context.Context, p principal.Principal, teamID string) ([]TaskResponse, error) {
	if _, err := uuid.Parse(teamID); err != nil {
		return nil, taskerrors.ErrTeamNotFound
	}
	if !p.CanAccessTeam(teamID) {
		return nil, taskerrors.ErrTeamForbidden
	}

	rows, err := s.repo.FindAllByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("list tasks failed", zap.String("team_id", teamID), zap.Error(err))
		return nil, err
	}

	resp := make([]TaskResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (TaskResponse, error) {
	t, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, p principal.Principal, id string, req UpdateTaskRequest) (TaskResponse, error) {
	t, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return TaskResponse{}, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	var assigneeID *uuid.UUID
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		exists, err := s.repo.EmployeeExists(ctx, *req.AssigneeID)
		if err != nil {
			return TaskResponse{}, err
		}
		if !exists {
			return TaskResponse{}, taskerrors.ErrAssigneeNotFound
		}
		aid := uuid.MustParse(*req.AssigneeID)
		assigneeID = &aid
	}

	t.Title = req.Title
	t.Description = req.Description
	t.AssigneeID = assigneeID
	t.Priority = req.Priority
	t.DueDate = dueDate
	t.Assignee = nil

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task success", zap.String("task_id", id))
	return mapToResponse(*t), nil
}

// UpdateStatus memindahkan task satu kolom ke kiri atau kanan.
func (s *service) UpdateStatus(ctx context.Context, p principal.Principal, id, newStatus string) (TaskResponse, error) {
	t, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return TaskResponse{}, err
	}

	if newStatus == t.Status {
		// Ulang status yang sama dianggap no-op, bukan pelanggaran.
		return mapToResponse(*t), nil
	}

	if !adjacentTransition(t.Status, newStatus) {
		s.logger.Warn("task status transition rejected",
			zap.String("task_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", newStatus),
		)
		return TaskResponse{}, taskerrors.ErrNonAdjacentStatus
	}

	t.Status = newStatus
	t.Assignee = nil
	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update task status persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task status success",
		zap.String("task_id", id),
		zap.String("status", newStatus),
	)
	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, id string) error {
	if _, err := s.findAccessible(ctx, p, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.DeleteComments(ctx, id); err != nil {
		s.logger.Error("delete task comments failed", zap.String("task_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete task failed", zap.String("task_id", id), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete task success", zap.String("task_id", id))
	return nil
}

func (s *service) AddComment(ctx context.Context, p principal.Principal, taskID string, req AddCommentRequest) (CommentResponse, error) {
	if _, err := s.findAccessible(ctx, p, taskID); err != nil {
		return CommentResponse{}, err
	}

	cm := &Comment{
		ID:       uuid.New(),
		TaskID:   uuid.MustParse(taskID),
		AuthorID: uuid.MustParse(p.ID),
		Content:  req.Content,
	}

	if err := s.repo.CreateComment(ctx, cm); err != nil {
		s.logger.Error("add comment persist failed", zap.String("task_id", taskID), zap.Error(err))
		return CommentResponse{}, err
	}

	return mapCommentToResponse(*cm), nil
}

func (s *service) ListComments(ctx context.Context, p principal.Principal, taskID string) ([]CommentResponse, error) {
	if _, err := s.findAccessible(ctx, p, taskID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindComments(ctx, taskID)
	if err != nil {
		return nil, err
	}

	resp := make([]CommentResponse, len(rows))
	for i, cm := range rows {
		resp[i] = mapCommentToResponse(cm)
	}
	return resp, nil
}

func (s *service) findAccessible(ctx context.Context, p principal.Principal, id string) (*Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, taskerrors.ErrInvalidTaskID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskerrors.ErrTaskNotFound
		}
		return nil, err
	}
	if !p.CanAccessTeam(t.TeamID.String()) {
		return nil, taskerrors.ErrTaskNotFound
	}
	return t, nil
}

func parseDueDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return nil, taskerrors.ErrInvalidDueDate
	}
	return &d, nil
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID.String(),
		Number:    t.Number,
		TeamID:    t.TeamID.String(),
		Title:     t.Title,
		CreatedBy: t.CreatedBy.String(),
		Status:    t.Status,
		Priority:  t.Priority,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
	resp.Description = t.Description
	if t.AssigneeID != nil {
		v := t.AssigneeID.String()
		resp.AssigneeID = &v
	}
	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.FullName
	}
	if t.DueDate != nil {
		v := t.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	return resp
}

func mapCommentToResponse(cm Comment) CommentResponse {
	resp := CommentResponse{
		ID:        cm.ID.String(),
		TaskID:    cm.TaskID.String(),
		AuthorID:  cm.AuthorID.String(),
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt.Format(time.RFC3339),
	}
	if cm.Author != nil {
		resp.AuthorName = cm.Author.FullName
	}
	return resp
}
