package dto

import (
	"time"

	"clinic-scheduling-api/internal/domain/entity"
)

// AuditLogQuery is read from the query string of GET /admin/audit-logs.
type AuditLogQuery struct {
	Action string `json:"action" validate:"omitempty,max=100"`
	Page   int    `json:"page" validate:"min=1"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
}

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	TenantID  *uint         `json:"tenant_id"`
	UserID    *uint         `json:"user_id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

// AuditLogPage is one page of logs plus the total across all pages.
type AuditLogPage struct {
	Logs  []AuditLogResponse
	Page  int
	Limit int
	Total int64
}
