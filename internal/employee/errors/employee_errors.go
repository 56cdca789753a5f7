package employeeerrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)
	ErrAccessTeamsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"access_teams is required for multi_team and team_only access levels",
		http.StatusBadRequest,
	)
	ErrInvalidAccessTeam = apperror.New(
		apperror.CodeInvalidInput,
		"access_teams contains an unknown team",
		http.StatusBadRequest,
	)
)
