package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/infrastructure/metrics"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	operationListSlots = "list_slots"
	operationCheck     = "check"
)

type AvailabilityUsecase interface {
	GetAvailableSlots(ctx context.Context, tenantID, specialistID uint, date string) (*dto.AvailableSlotsResponse, error)
	CheckAvailability(ctx context.Context, tenantID, specialistID uint, date, at string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	log          *logrus.Logger
	engine       *service.AvailabilityEngine
	slotCache    *service.SlotCache
	metrics      *metrics.AvailabilityMetrics
	location     *time.Location
	queryTimeout time.Duration
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	engine *service.AvailabilityEngine,
	slotCache *service.SlotCache,
	availabilityMetrics *metrics.AvailabilityMetrics,
	location *time.Location,
	queryTimeout time.Duration,
) AvailabilityUsecase {
	if location == nil {
		location = time.UTC
	}
	return &availabilityUsecase{
		log:          log,
		engine:       engine,
		slotCache:    slotCache,
		metrics:      availabilityMetrics,
		location:     location,
		queryTimeout: queryTimeout,
	}
}

// GetAvailableSlots serves from the slot cache when possible and fills it on a miss.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, tenantID, specialistID uint, date string) (*dto.AvailableSlotsResponse, error) {
	start := time.Now()

	day, err := ParseDate(date, u.location)
	if err != nil {
		u.metrics.ObserveRequest(operationListSlots, "invalid", time.Since(start).Seconds())
		return nil, err
	}

	if slots, ok := u.slotCache.Get(ctx, tenantID, specialistID, day); ok {
		u.metrics.ObserveCache(true)
		u.metrics.ObserveRequest(operationListSlots, "ok", time.Since(start).Seconds())
		return &dto.AvailableSlotsResponse{AvailableSlots: slots}, nil
	}
	u.metrics.ObserveCache(false)

	// Read before computing: an invalidation racing this listing bumps the
	// generation and the stale result is then not stored.
	generation, cacheable := u.slotCache.Generation(ctx, tenantID, specialistID)

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	slots, err := u.engine.ListAvailableSlots(ctx, specialistID, tenantID, day)
	if err != nil {
		u.metrics.ObserveRequest(operationListSlots, resultOf(err), time.Since(start).Seconds())
		return nil, err
	}

	if cacheable {
		u.slotCache.Set(ctx, tenantID, specialistID, day, generation, slots)
	}
	u.metrics.ObserveSlots(len(slots))
	u.metrics.ObserveRequest(operationListSlots, "ok", time.Since(start).Seconds())
	return &dto.AvailableSlotsResponse{AvailableSlots: slots}, nil
}

// CheckAvailability always reads storage; point checks gate bookings and must not see stale data.
func (u *availabilityUsecase) CheckAvailability(ctx context.Context, tenantID, specialistID uint, date, at string) (*dto.AvailabilityResponse, error) {
	start := time.Now()

	day, err := ParseDate(date, u.location)
	if err != nil {
		u.metrics.ObserveRequest(operationCheck, "invalid", time.Since(start).Seconds())
		return nil, err
	}
	tod, err := ParseTime(at)
	if err != nil {
		u.metrics.ObserveRequest(operationCheck, "invalid", time.Since(start).Seconds())
		return nil, err
	}

	ctx, cancel := u.withTimeout(ctx)
	defer cancel()

	result, err := u.engine.CheckAvailability(ctx, specialistID, tenantID, day, tod)
	if err != nil {
		u.metrics.ObserveRequest(operationCheck, resultOf(err), time.Since(start).Seconds())
		return nil, err
	}

	u.metrics.ObserveRequest(operationCheck, "ok", time.Since(start).Seconds())
	return &dto.AvailabilityResponse{Available: result.Available, Reason: result.Reason}, nil
}

func (u *availabilityUsecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.queryTimeout)
}

// ParseDate reads a YYYY-MM-DD calendar date at midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", service.ErrInvalidArgument)
	}
	day, err := time.ParseInLocation(service.DateFormat, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use YYYY-MM-DD", service.ErrInvalidArgument, raw)
	}
	return day, nil
}

// ParseTime reads an HH:MM wall-clock time.
func ParseTime(raw string) (entity.TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: time is required", service.ErrInvalidArgument)
	}
	tod, err := entity.ParseTimeOfDay(raw)
	if err != nil || len(raw) != len(service.TimeFormat) {
		return 0, fmt.Errorf("%w: invalid time %q, use HH:MM", service.ErrInvalidArgument, raw)
	}
	return tod, nil
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
