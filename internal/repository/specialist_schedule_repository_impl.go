package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type specialistScheduleRepository struct{}

func NewSpecialistScheduleRepository() domainRepo.SpecialistScheduleRepository {
	return &specialistScheduleRepository{}
}

func (r *specialistScheduleRepository) FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.SpecialistSchedule, error) {
	var schedules []entity.SpecialistSchedule
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ?", specialistID, tenantID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindAvailableByDay returns the working intervals of one weekday, in a stable order.
func (r *specialistScheduleRepository) FindAvailableByDay(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, day int) ([]entity.SpecialistSchedule, error) {
	var schedules []entity.SpecialistSchedule
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ? AND day_of_week = ? AND is_available = ?", specialistID, tenantID, day, true).
		Order("start_time ASC, id ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// ReplaceForSpecialist deletes every schedule of the specialist and inserts the given ones.
// Callers pass a transaction.
func (r *specialistScheduleRepository) ReplaceForSpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, schedules []entity.SpecialistSchedule) error {
	err := db.WithContext(ctx).
		Where("specialist_id = ? AND tenant_id = ?", specialistID, tenantID).
		Delete(&entity.SpecialistSchedule{}).Error
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		return nil
	}
	for i := range schedules {
		schedules[i].SpecialistID = specialistID
		schedules[i].TenantID = tenantID
	}
	return db.WithContext(ctx).Create(&schedules).Error
}
