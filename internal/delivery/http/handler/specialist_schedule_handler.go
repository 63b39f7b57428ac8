package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"
)

type SpecialistScheduleHandler struct {
	scheduleUsecase usecase.SpecialistScheduleUsecase
	validator       *validator.CustomValidator
}

func NewSpecialistScheduleHandler(scheduleUsecase usecase.SpecialistScheduleUsecase, validator *validator.CustomValidator) *SpecialistScheduleHandler {
	return &SpecialistScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

// GetSchedule returns the specialist with its weekly schedule and breaks.
// @Summary Get specialist schedule
// @Tags Schedules
// @Security BearerAuth
// @Produce json
// @Param tenantId path int true "Tenant ID"
// @Param specialistId path int true "Specialist ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{tenantId}/specialists/{specialistId}/schedule [get]
func (h *SpecialistScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.target(w, r)
	if !ok {
		return
	}
	h.getSchedule(w, r, tenantID, specialistID)
}

// ReplaceSchedule replaces every schedule row of the specialist.
// @Summary Replace specialist schedule
// @Tags Schedules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ReplaceScheduleRequest true "Weekly schedule"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /tenants/{tenantId}/specialists/{specialistId}/schedule [put]
func (h *SpecialistScheduleHandler) ReplaceSchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.target(w, r)
	if !ok {
		return
	}
	h.replaceSchedule(w, r, tenantID, specialistID)
}

// ReplaceBreaks replaces every break of the specialist.
// @Router /tenants/{tenantId}/specialists/{specialistId}/breaks [put]
func (h *SpecialistScheduleHandler) ReplaceBreaks(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.target(w, r)
	if !ok {
		return
	}
	h.replaceBreaks(w, r, tenantID, specialistID)
}

// GetMySchedule is GetSchedule for the logged-in specialist.
// @Router /specialists/my-schedule [get]
func (h *SpecialistScheduleHandler) GetMySchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.self(w, r)
	if !ok {
		return
	}
	h.getSchedule(w, r, tenantID, specialistID)
}

// @Router /specialists/my-schedule [put]
func (h *SpecialistScheduleHandler) ReplaceMySchedule(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.self(w, r)
	if !ok {
		return
	}
	h.replaceSchedule(w, r, tenantID, specialistID)
}

// @Router /specialists/my-breaks [put]
func (h *SpecialistScheduleHandler) ReplaceMyBreaks(w http.ResponseWriter, r *http.Request) {
	tenantID, specialistID, ok := h.self(w, r)
	if !ok {
		return
	}
	h.replaceBreaks(w, r, tenantID, specialistID)
}

func (h *SpecialistScheduleHandler) getSchedule(w http.ResponseWriter, r *http.Request, tenantID, specialistID uint) {
	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), tenantID, specialistID)
	if err != nil {
		h.writeError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *SpecialistScheduleHandler) replaceSchedule(w http.ResponseWriter, r *http.Request, tenantID, specialistID uint) {
	// A bare JSON array does not decode into the request object and is rejected here.
	var req dto.ReplaceScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, `Invalid request body, expected {"schedules": [...]}`)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.ReplaceSchedule(r.Context(), tenantID, specialistID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to replace schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule replaced successfully", schedule)
}

func (h *SpecialistScheduleHandler) replaceBreaks(w http.ResponseWriter, r *http.Request, tenantID, specialistID uint) {
	var req dto.ReplaceBreaksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, `Invalid request body, expected {"breaks": [...]}`)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.ReplaceBreaks(r.Context(), tenantID, specialistID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to replace breaks")
		return
	}

	response.Success(w, http.StatusOK, "Breaks replaced successfully", schedule)
}

func (h *SpecialistScheduleHandler) target(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return 0, 0, false
	}
	specialistID, err := pathID(r, "specialistId")
	if err != nil {
		response.BadRequest(w, "Invalid specialist ID")
		return 0, 0, false
	}
	return tenantID, specialistID, true
}

func (h *SpecialistScheduleHandler) self(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	subject, ok := middleware.GetSubjectFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return 0, 0, false
	}
	if subject.TenantID == nil {
		response.Forbidden(w, "Specialist has no tenant")
		return 0, 0, false
	}
	return *subject.TenantID, subject.UserID, true
}

func (h *SpecialistScheduleHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrSpecialistNotFound):
		response.NotFound(w, "Specialist not found")
	case errors.Is(err, usecase.ErrInvalidTimeRange), errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}
