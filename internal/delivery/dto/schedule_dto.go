package dto

// Request DTOs

type ScheduleEntryRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	IsAvailable *bool  `json:"is_available"`
}

// ReplaceScheduleRequest replaces every weekly schedule row of a specialist.
// An empty list clears the schedule.
type ReplaceScheduleRequest struct {
	Schedules []ScheduleEntryRequest `json:"schedules" validate:"required,dive"`
}

type BreakEntryRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type ReplaceBreaksRequest struct {
	Breaks []BreakEntryRequest `json:"breaks" validate:"required,dive"`
}

// Response DTOs

type ScheduleEntryResponse struct {
	ID          uint   `json:"id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type BreakResponse struct {
	ID          uint   `json:"id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

type SpecialistScheduleResponse struct {
	Specialist UserResponse            `json:"specialist"`
	Schedules  []ScheduleEntryResponse `json:"schedules"`
	Breaks     []BreakResponse         `json:"breaks"`
}
