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

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

// CreateUser registers an Administrador, Especialista or Paciente in the tenant.
// @Summary Create user
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tenantId path int true "Tenant ID"
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tenants/{tenantId}/users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.CreateUser(r.Context(), tenantID, &req)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

// RegisterPatient registers a Paciente in the tenant. Open to Administrador,
// Especialista and Super Admin.
// @Summary Register patient
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tenantId path int true "Tenant ID"
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /tenants/{tenantId}/pacientes [post]
func (h *UserHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.RegisterPatient(r.Context(), tenantID, &req)
	if err != nil {
		h.writeCreateError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", user)
}

func (h *UserHandler) writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUsernameAlreadyExists):
		response.Conflict(w, "Username already exists", nil)
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		response.Conflict(w, "Email already exists", nil)
	case errors.Is(err, usecase.ErrSpecialistFieldsEmpty):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrRoleNotAllowed):
		response.Forbidden(w, err.Error())
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "Patients cannot register users")
	case errors.Is(err, usecase.ErrTenantNotFound):
		response.NotFound(w, "Tenant not found")
	case errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "")
	default:
		response.InternalServerError(w, "Failed to create user")
	}
}

func (h *UserHandler) GetUsersByTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		response.BadRequest(w, "Invalid tenant ID")
		return
	}

	users, err := h.userUsecase.GetUsersByTenant(r.Context(), tenantID)
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}
