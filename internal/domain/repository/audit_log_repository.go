package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	// FindAll returns one page of logs, newest first, and the total matching the filter.
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error)
}
