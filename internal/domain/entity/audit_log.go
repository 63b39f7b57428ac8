package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog records a change made through the API
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	TenantID  *uint     `gorm:"index" json:"tenant_id,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

const (
	AuditActionUserLogin         = "user.login"
	AuditActionUserCreate        = "user.create"
	AuditActionTenantCreate      = "tenant.create"
	AuditActionTenantUpdate      = "tenant.update"
	AuditActionTenantDelete      = "tenant.delete"
	AuditActionScheduleReplace   = "schedule.replace"
	AuditActionBreakReplace      = "break.replace"
	AuditActionAppointmentCreate = "appointment.create"
	AuditActionAppointmentStatus = "appointment.status"
	AuditActionAppointmentNotes  = "appointment.notes"
)
