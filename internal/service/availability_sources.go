package service

import (
	"context"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

// RepositorySources binds the gorm repositories to a connection so they satisfy
// the engine's read interfaces.
type RepositorySources struct {
	db              *gorm.DB
	scheduleRepo    repository.SpecialistScheduleRepository
	breakRepo       repository.SpecialistBreakRepository
	appointmentRepo repository.AppointmentRepository
}

func NewRepositorySources(
	db *gorm.DB,
	scheduleRepo repository.SpecialistScheduleRepository,
	breakRepo repository.SpecialistBreakRepository,
	appointmentRepo repository.AppointmentRepository,
) *RepositorySources {
	return &RepositorySources{
		db:              db,
		scheduleRepo:    scheduleRepo,
		breakRepo:       breakRepo,
		appointmentRepo: appointmentRepo,
	}
}

// WithDB returns sources reading through db, typically an open transaction.
func (s *RepositorySources) WithDB(db *gorm.DB) *RepositorySources {
	clone := *s
	clone.db = db
	return &clone
}

func (s *RepositorySources) FindAvailableByDay(ctx context.Context, specialistID, tenantID uint, day int) ([]entity.SpecialistSchedule, error) {
	return s.scheduleRepo.FindAvailableByDay(ctx, s.db, specialistID, tenantID, day)
}

func (s *RepositorySources) FindByDay(ctx context.Context, specialistID, tenantID uint, day int) ([]entity.SpecialistBreak, error) {
	return s.breakRepo.FindByDay(ctx, s.db, specialistID, tenantID, day)
}

func (s *RepositorySources) FindBookedOnDate(ctx context.Context, specialistID, tenantID uint, date time.Time) ([]entity.Appointment, error) {
	return s.appointmentRepo.FindBookedOnDate(ctx, s.db, specialistID, tenantID, date)
}
