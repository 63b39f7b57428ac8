package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidArgument is returned for malformed dates or times. Not retried.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorageUnavailable wraps any failure of the schedule, break or appointment reads.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// =============================================================================
// Constants
// =============================================================================

const (
	// SlotDuration is the fixed granularity of bookable slots.
	SlotDuration = 30 * time.Minute

	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Reasons returned by CheckAvailability. These strings are part of the wire contract.
const (
	ReasonNotWorkingDay       = "El especialista no trabaja este día"
	ReasonOutsideWorkingHours = "Fuera del horario de trabajo"
	ReasonOnBreak             = "El especialista tiene un descanso en esta hora"
	ReasonAlreadyBooked       = "Ya hay una cita programada en esta fecha/hora"
)

// =============================================================================
// Types
// =============================================================================

// ScheduleSource reads the weekly schedule rows with is_available = true.
type ScheduleSource interface {
	FindAvailableByDay(ctx context.Context, specialistID, tenantID uint, day int) ([]entity.SpecialistSchedule, error)
}

// BreakSource reads the recurring breaks of one weekday.
type BreakSource interface {
	FindByDay(ctx context.Context, specialistID, tenantID uint, day int) ([]entity.SpecialistBreak, error)
}

// AppointmentSource reads the appointments booked on a calendar day.
// Cancelled rows may be returned; the engine ignores them.
type AppointmentSource interface {
	FindBookedOnDate(ctx context.Context, specialistID, tenantID uint, date time.Time) ([]entity.Appointment, error)
}

// AvailabilityResult is the answer to a point availability query.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityEngine computes bookable slots from schedules, breaks and booked
// appointments. It holds no state between calls and never writes.
type AvailabilityEngine struct {
	log          *logrus.Logger
	schedules    ScheduleSource
	breaks       BreakSource
	appointments AppointmentSource
}

// =============================================================================
// Constructor
// =============================================================================

func NewAvailabilityEngine(
	log *logrus.Logger,
	schedules ScheduleSource,
	breaks BreakSource,
	appointments AppointmentSource,
) *AvailabilityEngine {
	return &AvailabilityEngine{
		log:          log,
		schedules:    schedules,
		breaks:       breaks,
		appointments: appointments,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// DayOfWeek maps a calendar date to 0=Sunday..6=Saturday using the date's own
// location. No timezone conversion is applied.
func DayOfWeek(date time.Time) int {
	return int(date.Weekday())
}

// ListAvailableSlots returns the HH:MM start of every free 30-minute slot on date.
//
// Candidates start at each schedule's start_time and advance by SlotDuration while
// strictly before end_time. A candidate is dropped when a break covers it
// (start <= t < end) or when a booked appointment starts on the same hour and minute.
// Intervals are concatenated in fetch order without de-duplication.
func (e *AvailabilityEngine) ListAvailableSlots(ctx context.Context, specialistID, tenantID uint, date time.Time) ([]string, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	day := DayOfWeek(date)

	schedules, err := e.schedules.FindAvailableByDay(ctx, specialistID, tenantID, day)
	if err != nil {
		e.log.Warnf("Failed to fetch schedules for specialist %d: %+v", specialistID, err)
		return nil, fmt.Errorf("%w: schedules: %w", ErrStorageUnavailable, err)
	}

	slots := []string{}
	if len(schedules) == 0 {
		return slots, nil
	}

	// Breaks and appointments are independent reads.
	var (
		breaks   []entity.SpecialistBreak
		occupied []entity.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		breaks, err = e.breaks.FindByDay(gctx, specialistID, tenantID, day)
		if err != nil {
			return fmt.Errorf("%w: breaks: %w", ErrStorageUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		occupied, err = e.appointments.FindBookedOnDate(gctx, specialistID, tenantID, date)
		if err != nil {
			return fmt.Errorf("%w: appointments: %w", ErrStorageUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		e.log.Warnf("Failed to fetch availability inputs for specialist %d: %+v", specialistID, err)
		return nil, err
	}

	booked := bookedTimes(occupied)
	for _, schedule := range schedules {
		for t := schedule.StartTime; t.Before(schedule.EndTime); t = t.Add(SlotDuration) {
			if onBreak(breaks, t) || isBooked(booked, t) {
				continue
			}
			slots = append(slots, t.String())
		}
	}

	return slots, nil
}

// CheckAvailability answers whether the specialist is free at date+at.
//
// Conditions are checked in order and the first failing one gives the reason:
// no schedule for the weekday, outside the first schedule's [start, end] (end
// inclusive), inside a break [start, end] (both inclusive), an appointment at
// the same hour and minute.
func (e *AvailabilityEngine) CheckAvailability(ctx context.Context, specialistID, tenantID uint, date time.Time, at entity.TimeOfDay) (*AvailabilityResult, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	if !at.Valid() {
		return nil, fmt.Errorf("%w: time out of range", ErrInvalidArgument)
	}
	day := DayOfWeek(date)

	schedules, err := e.schedules.FindAvailableByDay(ctx, specialistID, tenantID, day)
	if err != nil {
		e.log.Warnf("Failed to fetch schedules for specialist %d: %+v", specialistID, err)
		return nil, fmt.Errorf("%w: schedules: %w", ErrStorageUnavailable, err)
	}
	if len(schedules) == 0 {
		return &AvailabilityResult{Reason: ReasonNotWorkingDay}, nil
	}

	// Only the first interval of the day is considered here.
	schedule := schedules[0]
	if at.Before(schedule.StartTime) || at.After(schedule.EndTime) {
		return &AvailabilityResult{Reason: ReasonOutsideWorkingHours}, nil
	}

	breaks, err := e.breaks.FindByDay(ctx, specialistID, tenantID, day)
	if err != nil {
		e.log.Warnf("Failed to fetch breaks for specialist %d: %+v", specialistID, err)
		return nil, fmt.Errorf("%w: breaks: %w", ErrStorageUnavailable, err)
	}
	for i := range breaks {
		if breaks[i].CoversInclusive(at) {
			return &AvailabilityResult{Reason: ReasonOnBreak}, nil
		}
	}

	occupied, err := e.appointments.FindBookedOnDate(ctx, specialistID, tenantID, date)
	if err != nil {
		e.log.Warnf("Failed to fetch appointments for specialist %d: %+v", specialistID, err)
		return nil, fmt.Errorf("%w: appointments: %w", ErrStorageUnavailable, err)
	}
	if isBooked(bookedTimes(occupied), at) {
		return &AvailabilityResult{Reason: ReasonAlreadyBooked}, nil
	}

	return &AvailabilityResult{Available: true}, nil
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func bookedTimes(appointments []entity.Appointment) []entity.TimeOfDay {
	times := make([]entity.TimeOfDay, 0, len(appointments))
	for i := range appointments {
		if appointments[i].OccupiesSlot() {
			times = append(times, appointments[i].TimeOfDay())
		}
	}
	return times
}

func onBreak(breaks []entity.SpecialistBreak, t entity.TimeOfDay) bool {
	for i := range breaks {
		if breaks[i].Covers(t) {
			return true
		}
	}
	return false
}

func isBooked(booked []entity.TimeOfDay, t entity.TimeOfDay) bool {
	for _, b := range booked {
		if b.SameMinute(t) {
			return true
		}
	}
	return false
}
