package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialistBreakRepository interface {
	FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.SpecialistBreak, error)
	FindByDay(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, day int) ([]entity.SpecialistBreak, error)
	ReplaceForSpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, breaks []entity.SpecialistBreak) error
}
