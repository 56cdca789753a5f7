package report

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
	"metaedge-portal/internal/principal"
	"metaedge-portal/internal/shared/apperror"
	"metaedge-portal/internal/shared/response"
	"metaedge-portal/internal/storage"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func mustPrincipal(c *gin.Context) (principal.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
	}
	return p, ok
}

func (h *Handler) Create(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	in, err := h.bindCreateInput(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), p, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) bindCreateInput(c *gin.Context) (CreateReportInput, error) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req CreateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return CreateReportInput{}, apperror.MapValidationError(err)
		}
		return CreateReportInput{
			Kind:      req.Kind,
			TeamID:    req.TeamID,
			Title:     req.Title,
			Body:      req.Body,
			WeekStart: req.WeekStart,
			WeekEnd:   req.WeekEnd,
			Month:     req.Month,
		}, nil
	}

	in := CreateReportInput{
		Kind:      c.PostForm("kind"),
		TeamID:    c.PostForm("team_id"),
		Body:      c.PostForm("body"),
		WeekStart: c.PostForm("week_start"),
		WeekEnd:   c.PostForm("week_end"),
		Month:     c.PostForm("month"),
	}
	if title := c.PostForm("title"); title != "" {
		in.Title = &title
	}
	if in.Kind == "" {
		return CreateReportInput{}, apperror.RequiredField("kind")
	}
	if in.TeamID == "" {
		return CreateReportInput{}, apperror.RequiredField("team_id")
	}

	name, contentType, data, err := readUploadedFile(c)
	if err != nil {
		return CreateReportInput{}, err
	}
	in.FileName = name
	in.ContentType = contentType
	in.FileData = data
	return in, nil
}

// readUploadedFile membaca field "file" bila ada. Tanpa lampiran bukan
// error, invariant body-atau-lampiran dicek di service.
func readUploadedFile(c *gin.Context) (string, string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", "", nil, nil
	}
	if fileHeader.Size > storage.MaxUploadBytes {
		return "", "", nil, storage.ErrFileTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, storage.MaxUploadBytes+1))
	if err != nil {
		return "", "", nil, err
	}
	if len(data) > storage.MaxUploadBytes {
		return "", "", nil, storage.ErrFileTooLarge
	}
	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, nil
}

func (h *Handler) List(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var filter ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.List(c.Request.Context(), p, c.Param("kind"), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), p, c.Param("kind"), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	in, err := h.bindUpdateInput(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), p, c.Param("kind"), c.Param("id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) bindUpdateInput(c *gin.Context) (UpdateReportInput, error) {
	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req UpdateReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return UpdateReportInput{}, apperror.MapValidationError(err)
		}
		return UpdateReportInput{
			Title:            req.Title,
			Body:             req.Body,
			RemoveAttachment: req.RemoveAttachment,
		}, nil
	}

	in := UpdateReportInput{
		Body:             c.PostForm("body"),
		RemoveAttachment: c.PostForm("remove_attachment") == "true",
	}
	if title := c.PostForm("title"); title != "" {
		in.Title = &title
	}

	name, fileType, data, err := readUploadedFile(c)
	if err != nil {
		return UpdateReportInput{}, err
	}
	in.FileName = name
	in.ContentType = fileType
	in.FileData = data
	return in, nil
}

func (h *Handler) Delete(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), p, c.Param("kind"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
