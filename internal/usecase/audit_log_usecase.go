package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogPage, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// ListAuditLogs pages through every tenant for a Super Admin and the caller's tenant otherwise.
func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogPage, error) {
	tenantID, err := auditScope(ctx)
	if err != nil {
		return nil, err
	}

	filter := entity.AuditLogFilter{
		TenantID: tenantID,
		Action:   strings.TrimSpace(query.Action),
		Limit:    query.Limit,
		Offset:   (query.Page - 1) * query.Limit,
	}

	logs, total, err := u.auditLogRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogPage{
		Logs:  converter.AuditLogsToResponses(logs),
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	tenantID, err := auditScope(ctx)
	if err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	// Another tenant's log is reported as missing rather than forbidden.
	if auditLog == nil || (tenantID != nil && (auditLog.TenantID == nil || *auditLog.TenantID != *tenantID)) {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

func auditScope(ctx context.Context) (*uint, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if subject.Role == entity.RoleSuperAdmin {
		return nil, nil
	}
	if subject.TenantID == nil {
		return nil, ErrForbidden
	}
	return subject.TenantID, nil
}
