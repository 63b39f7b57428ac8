package usecase

import (
	"context"
	"errors"
	"strconv"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTenantNotFound = errors.New("tenant not found")
)

type TenantUsecase interface {
	CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error)
	GetAllTenants(ctx context.Context) ([]dto.TenantResponse, error)
	GetTenant(ctx context.Context, id uint) (*dto.TenantResponse, error)
	UpdateTenant(ctx context.Context, id uint, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error)
	DeleteTenant(ctx context.Context, id uint) error
}

type tenantUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	tenantRepo   repository.TenantRepository
	auditService service.AuditService
}

func NewTenantUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tenantRepo repository.TenantRepository,
	auditService service.AuditService,
) TenantUsecase {
	return &tenantUsecase{
		db:           db,
		log:          log,
		tenantRepo:   tenantRepo,
		auditService: auditService,
	}
}

func (u *tenantUsecase) CreateTenant(ctx context.Context, req *dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	tenant := &entity.Tenant{
		Name:    req.Name,
		Address: req.Address,
	}
	if err := u.tenantRepo.Create(ctx, tx, tenant); err != nil {
		u.log.Warnf("Failed to create tenant: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, auditActorOf(subject), entity.AuditActionTenantCreate,
		"tenant", strconv.FormatUint(uint64(tenant.ID), 10), tenant); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TenantToResponse(tenant), nil
}

func (u *tenantUsecase) GetAllTenants(ctx context.Context) ([]dto.TenantResponse, error) {
	tenants, err := u.tenantRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to find tenants: %+v", err)
		return nil, err
	}
	return converter.TenantsToResponses(tenants), nil
}

func (u *tenantUsecase) GetTenant(ctx context.Context, id uint) (*dto.TenantResponse, error) {
	tenant, err := u.tenantRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find tenant %d: %+v", id, err)
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return converter.TenantToResponse(tenant), nil
}

func (u *tenantUsecase) UpdateTenant(ctx context.Context, id uint, req *dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	tenant, err := u.tenantRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find tenant %d: %+v", id, err)
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	before := *tenant
	tenant.Name = req.Name
	tenant.Address = req.Address
	if err := u.tenantRepo.Update(ctx, tx, tenant); err != nil {
		u.log.Warnf("Failed to update tenant %d: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, auditActorOf(subject), entity.AuditActionTenantUpdate,
		"tenant", strconv.FormatUint(uint64(id), 10), before, tenant); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TenantToResponse(tenant), nil
}

// DeleteTenant removes a tenant with every user, schedule and appointment it owns.
// Its audit history survives with the tenant reference cleared.
func (u *tenantUsecase) DeleteTenant(ctx context.Context, id uint) error {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	tenant, err := u.tenantRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find tenant %d: %+v", id, err)
		return err
	}
	if tenant == nil {
		return ErrTenantNotFound
	}

	deleted, err := u.tenantRepo.Delete(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete tenant %d: %+v", id, err)
		return err
	}
	if deleted == 0 {
		return ErrTenantNotFound
	}

	if err := u.auditService.LogEvent(ctx, tx, auditActorOf(subject), entity.AuditActionTenantDelete, entity.JSON{
		"entity":    "tenant",
		"entity_id": strconv.FormatUint(uint64(id), 10),
		"name":      tenant.Name,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("Tenant %d (%s) deleted by user %d", id, tenant.Name, subject.UserID)
	return nil
}
