package converter

import (
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:                   user.ID,
		TenantID:             user.TenantID,
		Username:             user.Username,
		Email:                user.Email,
		Role:                 user.Role,
		IdentificationNumber: user.IdentificationNumber,
		Area:                 user.Area,
		Specialty:            user.Specialty,
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func TenantToResponse(tenant *entity.Tenant) *dto.TenantResponse {
	if tenant == nil {
		return nil
	}

	return &dto.TenantResponse{
		ID:        tenant.ID,
		Name:      tenant.Name,
		Address:   tenant.Address,
		CreatedAt: tenant.CreatedAt,
		UpdatedAt: tenant.UpdatedAt,
	}
}

func TenantsToResponses(tenants []entity.Tenant) []dto.TenantResponse {
	responses := make([]dto.TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = *TenantToResponse(&tenants[i])
	}
	return responses
}
