package repository

import (
	"context"
	"errors"
	"time"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Specialist", "Patient").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID, tenantID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Specialist").
		Where("patient_id = ? AND tenant_id = ?", patientID, tenantID).
		Order(`"date" ASC`).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("specialist_id = ? AND tenant_id = ?", specialistID, tenantID).
		Order(`"date" ASC`).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBookedOnDate(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, date time.Time) ([]entity.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where(`specialist_id = ? AND tenant_id = ? AND "date" >= ? AND "date" < ? AND status <> ?`,
			specialistID, tenantID, dayStart, dayEnd, entity.AppointmentStatusCancelled).
		Order(`"date" ASC`).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateNotes(ctx context.Context, db *gorm.DB, id uint, notes string) error {
	return db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("notes", notes).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uint, from, to entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}
