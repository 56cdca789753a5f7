package taskerrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task id",
		http.StatusBadRequest,
	)
	ErrTeamNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"team does not exist",
		http.StatusBadRequest,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"assignee does not exist",
		http.StatusBadRequest,
	)
	ErrTeamForbidden = apperror.New(
		apperror.CodeForbidden,
		"team is outside your access scope",
		http.StatusForbidden,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid due_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNonAdjacentStatus = apperror.New(
		apperror.CodeInvalidState,
		"status can only move one step along todo, in_progress, done",
		http.StatusBadRequest,
	)
)
