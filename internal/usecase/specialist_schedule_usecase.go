package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialistNotFound = errors.New("specialist not found")
	ErrInvalidTimeRange   = errors.New("start_time must be before end_time")
	ErrInvalidTimeFormat  = errors.New("invalid time format, use HH:MM")
)

type SpecialistScheduleUsecase interface {
	GetSchedule(ctx context.Context, tenantID, specialistID uint) (*dto.SpecialistScheduleResponse, error)
	ReplaceSchedule(ctx context.Context, tenantID, specialistID uint, req *dto.ReplaceScheduleRequest) (*dto.SpecialistScheduleResponse, error)
	ReplaceBreaks(ctx context.Context, tenantID, specialistID uint, req *dto.ReplaceBreaksRequest) (*dto.SpecialistScheduleResponse, error)
}

type specialistScheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	scheduleRepo repository.SpecialistScheduleRepository
	breakRepo    repository.SpecialistBreakRepository
	auditService service.AuditService
	slotCache    *service.SlotCache
}

func NewSpecialistScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	scheduleRepo repository.SpecialistScheduleRepository,
	breakRepo repository.SpecialistBreakRepository,
	auditService service.AuditService,
	slotCache *service.SlotCache,
) SpecialistScheduleUsecase {
	return &specialistScheduleUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		scheduleRepo: scheduleRepo,
		breakRepo:    breakRepo,
		auditService: auditService,
		slotCache:    slotCache,
	}
}

// GetSchedule returns the specialist with every weekly schedule row and break.
func (u *specialistScheduleUsecase) GetSchedule(ctx context.Context, tenantID, specialistID uint) (*dto.SpecialistScheduleResponse, error) {
	specialist, err := u.findSpecialist(ctx, u.db, tenantID, specialistID)
	if err != nil {
		return nil, err
	}
	return u.load(ctx, u.db, specialist)
}

// ReplaceSchedule deletes every schedule row of the specialist and inserts req.Schedules
// in a single transaction.
func (u *specialistScheduleUsecase) ReplaceSchedule(ctx context.Context, tenantID, specialistID uint, req *dto.ReplaceScheduleRequest) (*dto.SpecialistScheduleResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	schedules := make([]entity.SpecialistSchedule, len(req.Schedules))
	for i, s := range req.Schedules {
		start, end, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("schedules[%d]: %w", i, err)
		}
		available := true
		if s.IsAvailable != nil {
			available = *s.IsAvailable
		}
		schedules[i] = entity.SpecialistSchedule{
			DayOfWeek:   *s.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			IsAvailable: available,
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialist, err := u.findSpecialist(ctx, tx, tenantID, specialistID)
	if err != nil {
		return nil, err
	}

	previous, err := u.scheduleRepo.FindBySpecialist(ctx, tx, specialistID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for specialist %d: %+v", specialistID, err)
		return nil, err
	}

	if err := u.scheduleRepo.ReplaceForSpecialist(ctx, tx, specialistID, tenantID, schedules); err != nil {
		u.log.Warnf("Failed to replace schedules for specialist %d: %+v", specialistID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditActorOf(subject), entity.AuditActionScheduleReplace,
		"specialist_schedule", strconv.FormatUint(uint64(specialistID), 10),
		converter.SchedulesToResponses(previous), converter.SchedulesToResponses(schedules)); err != nil {
		return nil, err
	}

	result, err := u.load(ctx, tx, specialist)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateSpecialist(ctx, tenantID, specialistID)
	u.log.Infof("Schedule replaced: specialist=%d, tenant=%d, rows=%d", specialistID, tenantID, len(schedules))
	return result, nil
}

// ReplaceBreaks deletes every break of the specialist and inserts req.Breaks.
func (u *specialistScheduleUsecase) ReplaceBreaks(ctx context.Context, tenantID, specialistID uint, req *dto.ReplaceBreaksRequest) (*dto.SpecialistScheduleResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	breaks := make([]entity.SpecialistBreak, len(req.Breaks))
	for i, b := range req.Breaks {
		start, end, err := parseRange(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("breaks[%d]: %w", i, err)
		}
		breaks[i] = entity.SpecialistBreak{
			DayOfWeek:   *b.DayOfWeek,
			StartTime:   start,
			EndTime:     end,
			Description: b.Description,
		}
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	specialist, err := u.findSpecialist(ctx, tx, tenantID, specialistID)
	if err != nil {
		return nil, err
	}

	previous, err := u.breakRepo.FindBySpecialist(ctx, tx, specialistID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find breaks for specialist %d: %+v", specialistID, err)
		return nil, err
	}

	if err := u.breakRepo.ReplaceForSpecialist(ctx, tx, specialistID, tenantID, breaks); err != nil {
		u.log.Warnf("Failed to replace breaks for specialist %d: %+v", specialistID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditActorOf(subject), entity.AuditActionBreakReplace,
		"specialist_break", strconv.FormatUint(uint64(specialistID), 10),
		converter.BreaksToResponses(previous), converter.BreaksToResponses(breaks)); err != nil {
		return nil, err
	}

	result, err := u.load(ctx, tx, specialist)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.InvalidateSpecialist(ctx, tenantID, specialistID)
	u.log.Infof("Breaks replaced: specialist=%d, tenant=%d, rows=%d", specialistID, tenantID, len(breaks))
	return result, nil
}

func (u *specialistScheduleUsecase) findSpecialist(ctx context.Context, db *gorm.DB, tenantID, specialistID uint) (*entity.User, error) {
	specialist, err := u.userRepo.FindSpecialist(ctx, db, specialistID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find specialist %d: %+v", specialistID, err)
		return nil, err
	}
	if specialist == nil {
		return nil, ErrSpecialistNotFound
	}
	return specialist, nil
}

func (u *specialistScheduleUsecase) load(ctx context.Context, db *gorm.DB, specialist *entity.User) (*dto.SpecialistScheduleResponse, error) {
	tenantID := *specialist.TenantID

	schedules, err := u.scheduleRepo.FindBySpecialist(ctx, db, specialist.ID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for specialist %d: %+v", specialist.ID, err)
		return nil, err
	}

	breaks, err := u.breakRepo.FindBySpecialist(ctx, db, specialist.ID, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find breaks for specialist %d: %+v", specialist.ID, err)
		return nil, err
	}

	return converter.SpecialistScheduleToResponse(specialist, schedules, breaks), nil
}

// parseRange parses an HH:MM pair and enforces start < end.
func parseRange(startRaw, endRaw string) (entity.TimeOfDay, entity.TimeOfDay, error) {
	start, err := entity.ParseTimeOfDay(startRaw)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	end, err := entity.ParseTimeOfDay(endRaw)
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	if !start.Before(end) {
		return 0, 0, ErrInvalidTimeRange
	}
	return start, end, nil
}
