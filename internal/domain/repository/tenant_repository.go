package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type TenantRepository interface {
	Create(ctx context.Context, db *gorm.DB, tenant *entity.Tenant) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Tenant, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Tenant, error)
	Update(ctx context.Context, db *gorm.DB, tenant *entity.Tenant) error
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}
