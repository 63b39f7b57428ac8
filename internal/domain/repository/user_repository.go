package repository

import (
	"context"

	"clinic-scheduling-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	FindSpecialist(ctx context.Context, db *gorm.DB, id, tenantID uint) (*entity.User, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uint) ([]entity.User, error)
}
