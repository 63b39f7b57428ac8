package dto

import "time"

type CreateTenantRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

type UpdateTenantRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=255"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

type TenantResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
