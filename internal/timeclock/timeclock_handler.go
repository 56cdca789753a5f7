package timeclock

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"metaedge-portal/internal/middleware"
	"metaedge-portal/internal/principal"
	"metaedge-portal/internal/shared/apperror"
	"metaedge-portal/internal/shared/response"
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

func (h *Handler) Status(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.Status(c.Request.Context(), p.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ClockIn(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req ClockInRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
	}

	resp, err := h.service.ClockIn(c.Request.Context(), p.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), p.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) StartBreak(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.StartBreak(c.Request.Context(), p.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EndBreak(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.EndBreak(c.Request.Context(), p.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListEntries(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.ListEntries(c.Request.Context(), p, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) WeekSummary(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	resp, err := h.service.WeekSummary(c.Request.Context(), p, c.Query("employee_id"), c.Query("week_start"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
