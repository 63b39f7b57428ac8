package repository

import (
	"context"
	"errors"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	return db.WithContext(ctx).Omit("User").Create(log).Error
}

func (r *auditLogRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if filter.TenantID != nil {
			q = q.Where("tenant_id = ?", *filter.TenantID)
		}
		if filter.Action != "" {
			q = q.Where("action = ?", filter.Action)
		}
		return q
	}

	var total int64
	if err := db.WithContext(ctx).Model(&entity.AuditLog{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.AuditLog
	err := db.WithContext(ctx).
		Scopes(scope).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
