package timeclockerrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeConflict,
		"an open clock entry already exists",
		http.StatusConflict,
	)
	ErrNoOpenEntry = apperror.New(
		apperror.CodeNotFound,
		"no open clock entry found",
		http.StatusNotFound,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeConflict,
		"a break is already in progress",
		http.StatusConflict,
	)
	ErrNoOpenBreak = apperror.New(
		apperror.CodeNotFound,
		"no break in progress",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date range, expected YYYY-MM-DD with start_date <= end_date",
		http.StatusBadRequest,
	)
	ErrEmployeeScopeForbidden = apperror.New(
		apperror.CodeForbidden,
		"cannot read clock entries of another employee",
		http.StatusForbidden,
	)
)
