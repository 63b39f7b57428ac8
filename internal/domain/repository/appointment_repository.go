package repository

import (
	"context"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByPatient(ctx context.Context, db *gorm.DB, patientID, tenantID uint) ([]entity.Appointment, error)
	FindBySpecialist(ctx context.Context, db *gorm.DB, specialistID, tenantID uint) ([]entity.Appointment, error)
	// FindBookedOnDate returns non-cancelled appointments whose date falls on the calendar day of date.
	FindBookedOnDate(ctx context.Context, db *gorm.DB, specialistID, tenantID uint, date time.Time) ([]entity.Appointment, error)
	UpdateNotes(ctx context.Context, db *gorm.DB, id uint, notes string) error
	// UpdateStatus only touches the row while it still has status from, so concurrent transitions cannot both win.
	UpdateStatus(ctx context.Context, db *gorm.DB, id uint, from, to entity.AppointmentStatus) (int64, error)
}
