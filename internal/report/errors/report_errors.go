package reporterrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"report not found",
		http.StatusNotFound,
	)
	ErrInvalidReportID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid report id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"kind must be weekly or monthly",
		http.StatusBadRequest,
	)
	ErrBodyOrAttachmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"report needs a body or an attachment",
		http.StatusBadRequest,
	)
	ErrTeamForbidden = apperror.New(
		apperror.CodeForbidden,
		"team is outside your access scope",
		http.StatusForbidden,
	)
	ErrInvalidWeekPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"week_start and week_end must be YYYY-MM-DD with week_end >= week_start",
		http.StatusBadRequest,
	)
	ErrInvalidMonthPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be YYYY-MM",
		http.StatusBadRequest,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"only the owner or a full-access employee may modify this report",
		http.StatusForbidden,
	)
	ErrAttachmentUpload = apperror.New(
		apperror.CodeServiceUnavailable,
		"attachment upload failed",
		http.StatusServiceUnavailable,
	)
)
