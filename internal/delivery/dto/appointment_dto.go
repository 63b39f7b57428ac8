package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	SpecialistID uint   `json:"specialist_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,hhmm"`
	Reason       string `json:"reason" validate:"omitempty,max=1000"`
}

type UpdateAppointmentNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=5000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendiente confirmada completada cancelada"`
}

// Response DTOs

type AppointmentParticipant struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Area      *string `json:"area,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

type AppointmentResponse struct {
	ID           uint                    `json:"id"`
	TenantID     uint                    `json:"tenant_id"`
	SpecialistID uint                    `json:"specialist_id"`
	PatientID    uint                    `json:"patient_id"`
	Date         string                  `json:"date"`
	Time         string                  `json:"time"`
	Status       string                  `json:"status"`
	Reason       *string                 `json:"reason"`
	Notes        *string                 `json:"notes"`
	Specialist   *AppointmentParticipant `json:"specialist,omitempty"`
	Patient      *AppointmentParticipant `json:"patient,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}
