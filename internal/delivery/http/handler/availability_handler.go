package handler

import (
	"errors"
	"net/http"

	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/internal/usecase"
	"clinic-scheduling-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// AvailabilityHandler serves slot listings and point checks. Successful
// responses are written bare, without the response envelope.
type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	log                 *logrus.Logger
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, log *logrus.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		log:                 log,
	}
}

// GetAvailableSlots lists free 30-minute slots of a specialist for a date.
// The tenant is taken from the token.
// @Summary List available slots
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param specialistId path int true "Specialist ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} dto.AvailableSlotsResponse
// @Failure 400 {object} response.Response
// @Router /specialists/{specialistId}/available-slots [get]
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromToken(r)
	if err != nil {
		response.BadRequest(w, "Use the tenant-scoped route")
		return
	}
	h.listSlots(w, r, tenantID)
}

// GetTenantAvailableSlots is GetAvailableSlots with the tenant taken from the path.
// @Router /tenants/{tenantId}/specialists/{specialistId}/available-slots [get]
func (h *AvailabilityHandler) GetTenantAvailableSlots(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}
	h.listSlots(w, r, tenantID)
}

// CheckAvailability tells whether one HH:MM start time can be booked, and why not.
// @Summary Check availability
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param specialistId path int true "Specialist ID"
// @Param date query string true "YYYY-MM-DD"
// @Param time query string true "HH:MM"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} response.Response
// @Router /specialists/{specialistId}/availability [get]
func (h *AvailabilityHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromToken(r)
	if err != nil {
		response.BadRequest(w, "Use the tenant-scoped route")
		return
	}
	h.check(w, r, tenantID)
}

// CheckTenantAvailability is CheckAvailability with the tenant taken from the path.
// @Router /tenants/{tenantId}/specialists/{specialistId}/availability [get]
func (h *AvailabilityHandler) CheckTenantAvailability(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}
	h.check(w, r, tenantID)
}

func (h *AvailabilityHandler) listSlots(w http.ResponseWriter, r *http.Request, tenantID uint) {
	specialistID, err := pathID(r, "specialistId")
	if err != nil {
		response.BadRequest(w, "Invalid specialist ID")
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), tenantID, specialistID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err, "Failed to get available slots")
		return
	}

	response.JSON(w, http.StatusOK, slots)
}

func (h *AvailabilityHandler) check(w http.ResponseWriter, r *http.Request, tenantID uint) {
	specialistID, err := pathID(r, "specialistId")
	if err != nil {
		response.BadRequest(w, "Invalid specialist ID")
		return
	}

	query := r.URL.Query()
	result, err := h.availabilityUsecase.CheckAvailability(r.Context(), tenantID, specialistID, query.Get("date"), query.Get("time"))
	if err != nil {
		h.writeError(w, err, "Failed to check availability")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, service.ErrInvalidArgument) {
		response.BadRequest(w, err.Error())
		return
	}
	h.log.Errorf("%s: %+v", fallback, err)
	response.InternalServerError(w, fallback)
}
