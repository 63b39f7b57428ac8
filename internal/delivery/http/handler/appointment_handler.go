package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"
	"clinic-scheduling-api/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// CreateAppointment books a slot for the logged-in patient.
// @Summary Book appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tenantId path int true "Tenant ID"
// @Param request body dto.CreateAppointmentRequest true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tenants/{tenantId}/appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), tenantID, &req)
	if err != nil {
		var unavailable *usecase.SlotUnavailableError
		switch {
		case errors.As(err, &unavailable):
			response.Conflict(w, "Slot is not available", map[string]string{"reason": unavailable.Reason})
		case errors.Is(err, usecase.ErrSlotTaken):
			response.Conflict(w, "Slot was just booked by someone else", nil)
		case errors.Is(err, usecase.ErrSpecialistNotFound):
			response.NotFound(w, "Specialist not found")
		case errors.Is(err, service.ErrInvalidArgument):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrUnauthenticated):
			response.Unauthorized(w, "")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// GetMyAppointments lists the caller's appointments.
// @Router /appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetMyAppointments(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrUnauthenticated:
			response.Unauthorized(w, "")
		case usecase.ErrForbidden:
			response.Forbidden(w, "")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// @Router /appointments/{id}/notes [put]
func (h *AppointmentHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateNotes(r.Context(), appointmentID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update notes")
		return
	}

	response.Success(w, http.StatusOK, "Notes updated successfully", appointment)
}

// @Router /appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update status")
		return
	}

	response.Success(w, http.StatusOK, "Status updated successfully", appointment)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrAppointmentNotOwned), errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		response.Conflict(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "")
	default:
		response.InternalServerError(w, fallback)
	}
}
