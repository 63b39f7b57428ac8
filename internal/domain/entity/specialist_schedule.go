package entity

import "time"

// SpecialistSchedule is a recurring weekly working interval. A specialist may
// have several rows for the same day; each is an independent interval.
type SpecialistSchedule struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SpecialistID uint      `gorm:"not null;index:idx_schedule_specialist_day" json:"specialist_id"`
	TenantID     uint      `gorm:"not null;index" json:"tenant_id"`
	DayOfWeek    int       `gorm:"not null;index:idx_schedule_specialist_day" json:"day_of_week"`
	StartTime    TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	EndTime      TimeOfDay `gorm:"type:time;not null" json:"end_time"`
	IsAvailable  bool      `gorm:"not null" json:"is_available"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SpecialistSchedule) TableName() string {
	return "specialist_schedules"
}
