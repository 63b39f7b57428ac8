package converter

import (
	"testing"
	"time"

	"clinic-scheduling-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentToResponse_SplitsDateAndTime(t *testing.T) {
	reason := "control"
	appointment := &entity.Appointment{
		ID:           3,
		TenantID:     1,
		SpecialistID: 7,
		PatientID:    9,
		Date:         time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		Status:       entity.AppointmentStatusPending,
		Reason:       &reason,
		Specialist:   &entity.User{ID: 7, Username: "dr.house"},
	}

	resp := AppointmentToResponse(appointment)
	require.NotNil(t, resp)
	assert.Equal(t, "2024-06-03", resp.Date)
	assert.Equal(t, "09:30", resp.Time)
	assert.Equal(t, "pendiente", resp.Status)
	assert.Equal(t, "dr.house", resp.Specialist.Username)
	assert.Nil(t, resp.Patient)
	assert.Nil(t, AppointmentToResponse(nil))
}

func TestSpecialistScheduleToResponse(t *testing.T) {
	specialist := &entity.User{ID: 7, Username: "dr.house", Role: entity.RoleSpecialist}
	schedules := []entity.SpecialistSchedule{{ID: 1, DayOfWeek: 1, StartTime: entity.NewTimeOfDay(8, 0), EndTime: entity.NewTimeOfDay(12, 0), IsAvailable: true}}
	breaks := []entity.SpecialistBreak{{ID: 2, DayOfWeek: 1, StartTime: entity.NewTimeOfDay(10, 0), EndTime: entity.NewTimeOfDay(10, 30), Description: "Café"}}

	resp := SpecialistScheduleToResponse(specialist, schedules, breaks)
	require.NotNil(t, resp)
	assert.Equal(t, "Especialista", resp.Specialist.Role)
	require.Len(t, resp.Schedules, 1)
	assert.Equal(t, "08:00", resp.Schedules[0].StartTime)
	assert.Equal(t, "12:00", resp.Schedules[0].EndTime)
	require.Len(t, resp.Breaks, 1)
	assert.Equal(t, "10:30", resp.Breaks[0].EndTime)

	empty := SpecialistScheduleToResponse(specialist, nil, nil)
	assert.NotNil(t, empty.Schedules)
	assert.NotNil(t, empty.Breaks)
}

func TestAuditLogsToResponses_EmptyPageIsNotNil(t *testing.T) {
	responses := AuditLogsToResponses(nil)
	assert.NotNil(t, responses)
	assert.Empty(t, responses)

	userID := uint(20)
	responses = AuditLogsToResponses([]entity.AuditLog{{
		ID:     4,
		UserID: &userID,
		Action: entity.AuditActionAppointmentStatus,
		User:   &entity.User{ID: 20, Username: "paciente"},
	}})
	require.Len(t, responses, 1)
	assert.Equal(t, &userID, responses[0].UserID)
	require.NotNil(t, responses[0].User)
	assert.Equal(t, "paciente", responses[0].User.Username)
}
