package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

const appointmentDateFormat = "2006-01-02"

func participantToResponse(user *entity.User) *dto.AppointmentParticipant {
	if user == nil {
		return nil
	}
	return &dto.AppointmentParticipant{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Area:      user.Area,
		Specialty: user.Specialty,
	}
}

// AppointmentToResponse splits the stored timestamp into date and HH:MM.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:           appointment.ID,
		TenantID:     appointment.TenantID,
		SpecialistID: appointment.SpecialistID,
		PatientID:    appointment.PatientID,
		Date:         appointment.Date.Format(appointmentDateFormat),
		Time:         appointment.TimeOfDay().String(),
		Status:       string(appointment.Status),
		Reason:       appointment.Reason,
		Notes:        appointment.Notes,
		Specialist:   participantToResponse(appointment.Specialist),
		Patient:      participantToResponse(appointment.Patient),
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
