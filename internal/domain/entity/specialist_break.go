package entity

import "time"

// DefaultBreakDescription is used when a break is created without one.
const DefaultBreakDescription = "Descanso"

// SpecialistBreak is a recurring unavailability window inside a working day.
type SpecialistBreak struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SpecialistID uint      `gorm:"not null;index:idx_break_specialist_day" json:"specialist_id"`
	TenantID     uint      `gorm:"not null;index" json:"tenant_id"`
	DayOfWeek    int       `gorm:"not null;index:idx_break_specialist_day" json:"day_of_week"`
	StartTime    TimeOfDay `gorm:"type:time;not null" json:"start_time"`
	EndTime      TimeOfDay `gorm:"type:time;not null" json:"end_time"`
	Description  string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SpecialistBreak) TableName() string {
	return "specialist_breaks"
}

// Covers reports start <= t < end.
func (b *SpecialistBreak) Covers(t TimeOfDay) bool {
	return !t.Before(b.StartTime) && t.Before(b.EndTime)
}

// CoversInclusive reports start <= t <= end.
func (b *SpecialistBreak) CoversInclusive(t TimeOfDay) bool {
	return !t.Before(b.StartTime) && !t.After(b.EndTime)
}
