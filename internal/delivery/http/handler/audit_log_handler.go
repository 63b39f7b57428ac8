package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	defaultAuditPage  = 1
	defaultAuditLimit = 20
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// ListAuditLogs serves GET /admin/audit-logs?page=1&limit=20&action=appointment.create
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.AuditLogQuery{
		Action: q.Get("action"),
		Page:   defaultAuditPage,
		Limit:  defaultAuditLimit,
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "page must be a number")
			return
		}
		query.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "limit must be a number")
			return
		}
		query.Limit = limit
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	page, err := h.auditLogUsecase.ListAuditLogs(r.Context(), query)
	if err != nil {
		h.writeError(w, err, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", page.Logs,
		response.NewMeta(page.Page, page.Limit, page.Total))
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || auditLogID <= 0 {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		h.writeError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

func (h *AuditLogHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, "Audit log not found")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "Account is not bound to a tenant")
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}
