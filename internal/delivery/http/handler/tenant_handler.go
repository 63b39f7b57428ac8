package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"
)

type TenantHandler struct {
	tenantUsecase usecase.TenantUsecase
	validator     *validator.CustomValidator
}

func NewTenantHandler(tenantUsecase usecase.TenantUsecase, validator *validator.CustomValidator) *TenantHandler {
	return &TenantHandler{
		tenantUsecase: tenantUsecase,
		validator:     validator,
	}
}

func (h *TenantHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tenant, err := h.tenantUsecase.CreateTenant(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create tenant")
		return
	}

	response.Success(w, http.StatusCreated, "Tenant created successfully", tenant)
}

func (h *TenantHandler) GetAllTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantUsecase.GetAllTenants(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get tenants")
		return
	}

	response.Success(w, http.StatusOK, "Tenants retrieved successfully", tenants)
}

// @Summary Get tenant
// @Tags Tenants
// @Security BearerAuth
// @Produce json
// @Param tenantId path int true "Tenant ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{tenantId} [get]
func (h *TenantHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenantUsecase.GetTenant(r.Context(), tenantID)
	if err != nil {
		h.writeError(w, err, "Failed to get tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant retrieved successfully", tenant)
}

func (h *TenantHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	var req dto.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tenant, err := h.tenantUsecase.UpdateTenant(r.Context(), tenantID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant updated successfully", tenant)
}

// DeleteTenant also removes the tenant's users, schedules and appointments.
func (h *TenantHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	if err := h.tenantUsecase.DeleteTenant(r.Context(), tenantID); err != nil {
		h.writeError(w, err, "Failed to delete tenant")
		return
	}

	response.Success(w, http.StatusOK, "Tenant deleted successfully", nil)
}

func (h *TenantHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrTenantNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
