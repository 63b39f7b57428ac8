package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialistScheduleRepository interface {
	FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.SpecialistSchedule, error)
	FindAvailableByDay(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, day int) ([]entity.SpecialistSchedule, error)
	ReplaceForSpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, schedules []entity.SpecialistSchedule) error
}
