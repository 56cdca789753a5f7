package teamerrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"team not found",
		http.StatusNotFound,
	)
	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid team id",
		http.StatusBadRequest,
	)
	ErrTeamInUse = apperror.New(
		apperror.CodeConflict,
		"team still has tasks or reports attached",
		http.StatusConflict,
	)
	ErrMemberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee is already a member of this team",
		http.StatusConflict,
	)
	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"membership not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not exist",
		http.StatusBadRequest,
	)
)
