package team

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"metaedge-portal/internal/principal"
	teamerrors "metaedge-portal/internal/team/errors"
)

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor principal.Principal, req CreateTeamRequest) (TeamResponse, error)
	GetAll(ctx context.Context, p principal.Principal) ([]TeamResponse, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (TeamResponse, error)
	Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, teamID string, req AddMemberRequest) (MemberResponse, error)
	RemoveMember(ctx context.Context, teamID, employeeID string) error
	ListMembers(ctx context.Context, p principal.Principal, teamID string) ([]MemberResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor principal.Principal, req CreateTeamRequest) (TeamResponse, error) {
	t := &Team{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create team persist failed", zap.Error(err))
		return TeamResponse{}, err
	}

	s.logger.Info("create team success",
		zap.String("team_id", t.ID.String()),
		zap.String("actor_id", actor.ID),
	)
	return mapToResponse(*t, 0), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal) ([]TeamResponse, error) {
	var (
		rows []Team
		err  error
	)
	if p.IsFull() {
		rows, err = s.repo.FindAll(ctx)
	} else if len(p.AccessTeams) > 0 {
		rows, err = s.repo.FindAllByIDs(ctx, p.AccessTeams)
	}
	if err != nil {
		s.logger.Error("get all teams failed", zap.Error(err))
		return nil, err
	}

	counts, err := s.repo.MemberCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TeamResponse, len(rows))
	for i, t := range rows {
		resp[i] = mapToResponse(t, counts[t.ID.String()])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}
	if !p.CanAccessTeam(id) {
		// tim di luar scope disembunyikan, bukan ditolak
		return TeamResponse{}, teamerrors.ErrTeamNotFound
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, teamerrors.ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	counts, err := s.repo.MemberCounts(ctx)
	if err != nil {
		return TeamResponse{}, err
	}
	return mapToResponse(*t, counts[t.ID.String()]), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTeamRequest) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamResponse{}, teamerrors.ErrTeamNotFound
		}
		return TeamResponse{}, err
	}

	t.Name = req.Name
	t.Description = req.Description
	t.Color = req.Color

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("update team persist failed", zap.String("team_id", id), zap.Error(err))
		return TeamResponse{}, err
	}

	s.logger.Info("update team success", zap.String("team_id", id))

	counts, err := s.repo.MemberCounts(ctx)
	if err != nil {
		return TeamResponse{}, err
	}
	return mapToResponse(*t, counts[id]), nil
}

// Delete menolak penghapusan selama masih ada task/report yang menunjuk team.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidTeamID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return teamerrors.ErrTeamNotFound
		}
		return err
	}

	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		s.logger.Warn("delete team blocked by references",
			zap.String("team_id", id),
			zap.Int64("references", refs),
		)
		return teamerrors.ErrTeamInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete team failed", zap.String("team_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete team success", zap.String("team_id", id))
	return nil
}

func (s *service) AddMember(ctx context.Context, teamID string, req AddMemberRequest) (MemberResponse, error) {
	if _, err := uuid.Parse(teamID); err != nil {
		return MemberResponse{}, teamerrors.ErrInvalidTeamID
	}

	if _, err := s.repo.FindByID(ctx, teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MemberResponse{}, teamerrors.ErrTeamNotFound
		}
		return MemberResponse{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return MemberResponse{}, err
	}
	if !exists {
		return MemberResponse{}, teamerrors.ErrEmployeeNotFound
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	m := &Membership{
		TeamID:     uuid.MustParse(teamID),
		EmployeeID: uuid.MustParse(req.EmployeeID),
		Role:       role,
	}

	if err := s.repo.AddMember(ctx, m); err != nil {
		if isDuplicateMembership(err) {
			return MemberResponse{}, teamerrors.ErrMemberAlreadyExists
		}
		s.logger.Error("add member persist failed",
			zap.String("team_id", teamID),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return MemberResponse{}, err
	}

	s.logger.Info("add member success",
		zap.String("team_id", teamID),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapMemberToResponse(*m), nil
}

func (s *service) RemoveMember(ctx context.Context, teamID, employeeID string) error {
	if _, err := uuid.Parse(teamID); err != nil {
		return teamerrors.ErrInvalidTeamID
	}

	affected, err := s.repo.RemoveMember(ctx, teamID, employeeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return teamerrors.ErrMemberNotFound
	}

	s.logger.Info("remove member success",
		zap.String("team_id", teamID),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func (s *service) ListMembers(ctx context.Context, p principal.Principal, teamID string) ([]MemberResponse, error) {
	if _, err := uuid.Parse(teamID); err != nil {
		return nil, teamerrors.ErrInvalidTeamID
	}
	if !p.CanAccessTeam(teamID) {
		return nil, teamerrors.ErrTeamNotFound
	}

	rows, err := s.repo.FindMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := make([]MemberResponse, len(rows))
	for i, m := range rows {
		resp[i] = mapMemberToResponse(m)
	}
	return resp, nil
}

func isDuplicateMembership(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(t Team, memberCount int64) TeamResponse {
	return TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		MemberCount: memberCount,
	}
}

func mapMemberToResponse(m Membership) MemberResponse {
	resp := MemberResponse{
		EmployeeID: m.EmployeeID.String(),
		Role:       m.Role,
		JoinedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.Employee != nil {
		resp.FullName = m.Employee.FullName
		resp.Email = m.Employee.Email
	}
	return resp
}
