package noteerrors

import (
	"net/http"

	"metaedge-portal/internal/shared/apperror"
)

var (
	ErrNoteNotFound = apperror.New(
		apperror.CodeNotFound,
		"note not found",
		http.StatusNotFound,
	)
	ErrInvalidNoteID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid note id",
		http.StatusBadRequest,
	)
)
