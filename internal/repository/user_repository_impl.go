package repository

import (
	"context"
	"errors"

	"clinic-scheduling-api/internal/domain/entity"
	domainRepo "clinic-scheduling-api/internal/domain/repository"

	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("username = ?", username))
}

// FindSpecialist returns the user only if it is a specialist of tenantID.
func (r *userRepository) FindSpecialist(ctx context.Context, db *gorm.DB, id, tenantID uint) (*entity.User, error) {
	return r.first(db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND role = ?", id, tenantID, entity.RoleSpecialist))
}

func (r *userRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uint) ([]entity.User, error) {
	var users []entity.User
	err := db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
