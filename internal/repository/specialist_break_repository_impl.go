package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type specialistBreakRepository struct{}

func NewSpecialistBreakRepository() domainRepo.SpecialistBreakRepository {
	return &specialistBreakRepository{}
}

func (r *specialistBreakRepository) FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.SpecialistBreak, error) {
	var breaks []entity.SpecialistBreak
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ?", specialistID, tenantID).
		Order("day_of_week ASC, start_time ASC").
		Find(&breaks).Error
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *specialistBreakRepository) FindByDay(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, day int) ([]entity.SpecialistBreak, error) {
	var breaks []entity.SpecialistBreak
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ? AND day_of_week = ?", specialistID, tenantID, day).
		Order("start_time ASC").
		Find(&breaks).Error
	if err != nil {
		return nil, err
	}
	return breaks, nil
}

func (r *specialistBreakRepository) ReplaceForSpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, breaks []entity.SpecialistBreak) error {
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ?", specialistID, tenantID).
		Delete(&entity.SpecialistBreak{}).Error
	if err != nil {
		return err
	}
	if len(breaks) == 0 {
		return nil
	}
	for i := range breaks {
		breaks[i].SpecialistID = specialistID
		breaks[i].TenantID = tenantID
		if breaks[i].Description == "" {
			breaks[i].Description = entity.DefaultBreakDescription
		}
	}
	return db.WithContext(ctx).Create(&breaks).Error
}
