package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/infrastructure/metrics"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// appointmentSlotIndex is the partial unique index guarding one live appointment per slot.
const appointmentSlotIndex = "idx_appointments_live_slot"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrSlotUnavailable         = errors.New("slot is not available")
	ErrSlotTaken               = errors.New("slot was booked by someone else")
	ErrInvalidStatusTransition = entity.ErrInvalidStatusTransition
)

// SlotUnavailableError carries the availability reason of a rejected booking.
type SlotUnavailableError struct {
	Reason string
}

func (e *SlotUnavailableError) Error() string { return ErrSlotUnavailable.Error() + ": " + e.Reason }
func (e *SlotUnavailableError) Unwrap() error { return ErrSlotUnavailable }

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, tenantID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	UpdateNotes(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	sources         *service.RepositorySources
	auditService    service.AuditService
	slotCache       *service.SlotCache
	metrics         *metrics.AvailabilityMetrics
	location        *time.Location
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	sources *service.RepositorySources,
	auditService service.AuditService,
	slotCache *service.SlotCache,
	availabilityMetrics *metrics.AvailabilityMetrics,
	location *time.Location,
) AppointmentUsecase {
	if location == nil {
		location = time.UTC
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		sources:         sources,
		auditService:    auditService,
		slotCache:       slotCache,
		metrics:         availabilityMetrics,
		location:        location,
	}
}

// CreateAppointment books a slot for the logged-in patient.
//
// Flow:
// 1. Validate the specialist belongs to the tenant
// 2. CheckAvailability inside the transaction
// 3. Insert; the partial unique index rejects a concurrent booking of the same slot
// 4. Audit, commit, invalidate the cached day
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, tenantID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	day, err := ParseDate(req.Date, u.location)
	if err != nil {
		return nil, err
	}
	at, err := ParseTime(req.Time)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialist, err := u.userRepo.FindSpecialist(ctx, tx, req.SpecialistID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find specialist %d: %+v", req.SpecialistID, err)
		return nil, err
	}
	if specialist == nil {
		return nil, ErrSpecialistNotFound
	}

	sources := u.sources.WithDB(tx)
	engine := service.NewAvailabilityEngine(u.log, sources, sources, sources)
	availability, err := engine.CheckAvailability(ctx, specialist.ID, tenantID, day, at)
	if err != nil {
		return nil, err
	}
	if !availability.Available {
		u.metrics.ObserveBooking("unavailable")
		return nil, &SlotUnavailableError{Reason: availability.Reason}
	}

	appointment := &entity.Appointment{
		SpecialistID: specialist.ID,
		PatientID:    subject.UserID,
		TenantID:     tenantID,
		Date:         time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, day.Location()),
		Status:       entity.AppointmentStatusPending,
	}
	if req.Reason != "" {
		reason := req.Reason
		appointment.Reason = &reason
	}

	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		if isDuplicateKeyError(err, appointmentSlotIndex) {
			u.metrics.ObserveBooking("conflict")
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditActorOf(subject), entity.AuditActionAppointmentCreate,
		"appointment", strconv.FormatUint(uint64(appointment.ID), 10), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err, appointmentSlotIndex) {
			u.metrics.ObserveBooking("conflict")
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDate(ctx, tenantID, specialist.ID, day)
	u.metrics.ObserveBooking("created")

	appointment.Specialist = specialist
	u.log.Infof("Appointment created: id=%d, specialist=%d, patient=%d, at=%s", appointment.ID, specialist.ID, subject.UserID, appointment.Date.Format(time.RFC3339))
	return converter.AppointmentToResponse(appointment), nil
}

// GetMyAppointments lists the patient's own appointments, or the assigned ones for a specialist.
func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if subject.TenantID == nil {
		return nil, ErrForbidden
	}

	var (
		appointments []entity.Appointment
		err          error
	)
	switch subject.Role {
	case entity.RolePatient:
		appointments, err = u.appointmentRepo.FindByPatient(ctx, u.db, subject.UserID, *subject.TenantID)
	case entity.RoleSpecialist:
		appointments, err = u.appointmentRepo.FindBySpecialist(ctx, u.db, subject.UserID, *subject.TenantID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		u.log.Warnf("Failed to find appointments for user %d: %+v", subject.UserID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// UpdateNotes lets the assigned specialist write clinical notes.
func (u *appointmentUsecase) UpdateNotes(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findVisible(ctx, tx, appointmentID, subject.TenantID)
	if err != nil {
		return nil, err
	}
	if appointment.SpecialistID != subject.UserID {
		return nil, ErrAppointmentNotOwned
	}

	oldNotes := appointment.Notes
	if err := u.appointmentRepo.UpdateNotes(ctx, tx, appointment.ID, req.Notes); err != nil {
		u.log.Warnf("Failed to update notes of appointment %d: %+v", appointment.ID, err)
		return nil, err
	}
	notes := req.Notes
	appointment.Notes = &notes

	if err := u.auditService.LogUpdate(ctx, tx, auditActorOf(subject), entity.AuditActionAppointmentNotes,
		"appointment", strconv.FormatUint(uint64(appointment.ID), 10), oldNotes, appointment.Notes); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus moves an appointment along pendiente -> confirmada -> completada,
// or to cancelada from either open state.
//
// Patients may only cancel their own appointments. Specialists act on assigned
// appointments. Administrators act on any appointment of their tenant.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	next := entity.AppointmentStatus(req.Status)
	if !entity.IsValidAppointmentStatus(next) {
		return nil, ErrInvalidStatusTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.findVisible(ctx, tx, appointmentID, subject.TenantID)
	if err != nil {
		return nil, err
	}

	switch subject.Role {
	case entity.RolePatient:
		if appointment.PatientID != subject.UserID {
			return nil, ErrAppointmentNotOwned
		}
		if next != entity.AppointmentStatusCancelled {
			return nil, ErrForbidden
		}
	case entity.RoleSpecialist:
		if appointment.SpecialistID != subject.UserID {
			return nil, ErrAppointmentNotOwned
		}
	case entity.RoleAdministrator, entity.RoleSuperAdmin:
	default:
		return nil, ErrForbidden
	}

	previous := appointment.Status
	if err := appointment.TransitionTo(next); err != nil {
		return nil, err
	}

	affected, err := u.appointmentRepo.UpdateStatus(ctx, tx, appointment.ID, previous, next)
	if err != nil {
		u.log.Warnf("Failed to update status of appointment %d: %+v", appointment.ID, err)
		return nil, err
	}
	if affected == 0 {
		// Someone else moved it first.
		return nil, ErrInvalidStatusTransition
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditActorOf(subject), entity.AuditActionAppointmentStatus,
		"appointment", strconv.FormatUint(uint64(appointment.ID), 10), previous, next); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateDate(ctx, appointment.TenantID, appointment.SpecialistID, appointment.Date)
	u.log.Infof("Appointment %d status %s -> %s", appointment.ID, previous, next)
	return converter.AppointmentToResponse(appointment), nil
}

// findVisible loads an appointment and hides it from other tenants.
func (u *appointmentUsecase) findVisible(ctx context.Context, db *gorm.DB, appointmentID uint, tenantID *uint) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if tenantID != nil && appointment.TenantID != *tenantID {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}
