package auth

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "metaedge-portal/internal/auth/errors"
	"metaedge-portal/internal/employee"
	"metaedge-portal/internal/principal"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employees: employeeRepo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	empl, err := s.employees.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// Karyawan nonaktif tidak boleh masuk, kredensialnya tetap tersimpan.
	if !empl.IsActive {
		s.logger.Warn("login attempt on inactive account", zap.String("employee_id", empl.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrEmployeeInactive
	}

	accessToken, err := s.generateToken(empl, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(empl, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("access_level", empl.AccessLevel),
	)
	return accessToken, refreshToken, mapToResponse(empl), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return "", "", AuthResponse{}, autherrors.ErrTokenExpired
		}
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// Access teams di-reload dari database, bukan dari token lama,
	// supaya perubahan scope langsung berlaku saat refresh.
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !empl.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrEmployeeInactive
	}

	newAccess, err := s.generateToken(empl, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefresh, err := s.generateToken(empl, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccess, newRefresh, mapToResponse(empl), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	empl, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrEmployeeNotFound
	}
	resp := mapToResponse(empl)
	return &resp, nil
}

func (s *service) generateToken(empl *employee.Employee, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"employee_id":  empl.ID.String(),
		"access_level": empl.AccessLevel,
		"iat":          now.Unix(),
		"exp":          now.Add(ttl).Unix(),
	}
	if empl.AccessLevel != principal.AccessFull {
		teams := make([]string, 0, len(empl.AccessTeams))
		for _, at := range empl.AccessTeams {
			teams = append(teams, at.TeamID.String())
		}
		claims["access_teams"] = teams
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(empl *employee.Employee) AuthResponse {
	resp := AuthResponse{
		ID:          empl.ID.String(),
		FullName:    empl.FullName,
		Email:       empl.Email,
		Role:        empl.Role,
		AccessLevel: empl.AccessLevel,
	}
	for _, at := range empl.AccessTeams {
		resp.AccessTeams = append(resp.AccessTeams, at.TeamID.String())
	}
	return resp
}
