package entity

import (
	"errors"
	"time"
)

// ErrInvalidStatusTransition is returned when an appointment cannot move to the requested status.
var ErrInvalidStatusTransition = errors.New("invalid appointment status transition")

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pendiente"
	AppointmentStatusConfirmed AppointmentStatus = "confirmada"
	AppointmentStatusCompleted AppointmentStatus = "completada"
	AppointmentStatusCancelled AppointmentStatus = "cancelada"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// Appointment represents a patient appointment with a specialist
type Appointment struct {
	ID           uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	SpecialistID uint              `gorm:"not null;index" json:"specialist_id"`
	PatientID    uint              `gorm:"not null;index" json:"patient_id"`
	TenantID     uint              `gorm:"not null;index" json:"tenant_id"`
	Date         time.Time         `gorm:"type:timestamp;not null;index" json:"date"`
	Notes        *string           `gorm:"type:text" json:"notes"`
	Reason       *string           `gorm:"type:text" json:"reason"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Specialist *User `gorm:"foreignKey:SpecialistID" json:"specialist,omitempty"`
	Patient    *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsValidAppointmentStatus reports whether s is a known status.
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// OccupiesSlot reports whether the appointment blocks its start minute.
func (a *Appointment) OccupiesSlot() bool {
	return !a.IsCancelled()
}

// TimeOfDay returns the wall-clock start of the appointment.
func (a *Appointment) TimeOfDay() TimeOfDay {
	return TimeOfDayFrom(a.Date)
}

// CanTransitionTo reports whether next is reachable from the current status.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo moves the appointment to next or returns ErrInvalidStatusTransition.
func (a *Appointment) TransitionTo(next AppointmentStatus) error {
	if !a.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	a.Status = next
	return nil
}
