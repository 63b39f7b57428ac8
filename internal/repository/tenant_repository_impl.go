package repository

import (
	"context"
	"errors"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type tenantRepository struct{}

func NewTenantRepository() domainRepo.TenantRepository {
	return &tenantRepository{}
}

func (r *tenantRepository) Create(ctx context.Context, db *gorm.DB, tenant *entity.Tenant) error {
	return db.WithContext(ctx).Create(tenant).Error
}

func (r *tenantRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := db.WithContext(ctx).Where("id = ?", id).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Tenant, error) {
	var tenants []entity.Tenant
	err := db.WithContext(ctx).Order("name ASC").Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *tenantRepository) Update(ctx context.Context, db *gorm.DB, tenant *entity.Tenant) error {
	return db.WithContext(ctx).Model(tenant).Select("name", "address").Updates(tenant).Error
}

// Delete removes the tenant. Users, schedules and appointments go with it through ON DELETE CASCADE.
func (r *tenantRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Tenant{})
	return result.RowsAffected, result.Error
}
