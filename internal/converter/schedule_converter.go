package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

func SchedulesToResponses(schedules []entity.SpecialistSchedule) []dto.ScheduleEntryResponse {
	responses := make([]dto.ScheduleEntryResponse, len(schedules))
	for i, s := range schedules {
		responses[i] = dto.ScheduleEntryResponse{
			ID:          s.ID,
			DayOfWeek:   s.DayOfWeek,
			StartTime:   s.StartTime.String(),
			EndTime:     s.EndTime.String(),
			IsAvailable: s.IsAvailable,
		}
	}
	return responses
}

func BreaksToResponses(breaks []entity.SpecialistBreak) []dto.BreakResponse {
	responses := make([]dto.BreakResponse, len(breaks))
	for i, b := range breaks {
		responses[i] = dto.BreakResponse{
			ID:          b.ID,
			DayOfWeek:   b.DayOfWeek,
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			Description: b.Description,
		}
	}
	return responses
}

// SpecialistScheduleToResponse bundles a specialist with the full weekly plan.
func SpecialistScheduleToResponse(specialist *entity.User, schedules []entity.SpecialistSchedule, breaks []entity.SpecialistBreak) *dto.SpecialistScheduleResponse {
	if specialist == nil {
		return nil
	}

	return &dto.SpecialistScheduleResponse{
		Specialist: *UserToResponse(specialist),
		Schedules:  SchedulesToResponses(schedules),
		Breaks:     BreaksToResponses(breaks),
	}
}
