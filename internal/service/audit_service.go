package service

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditActor identifies who performed an audited change.
type AuditActor struct {
	UserID   *uint
	TenantID *uint
}

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, actor, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogEvent logs an action that is not tied to a single entity, such as a login.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, metadata entity.JSON) error {
	return s.write(ctx, tx, actor, action, metadata)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, actor AuditActor, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   actor.UserID,
		TenantID: actor.TenantID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", action, err)
		return err
	}

	return nil
}
