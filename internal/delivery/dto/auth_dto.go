package dto

import (
	"time"
)

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"omitempty"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID                   uint      `json:"id"`
	TenantID             *uint     `json:"tenant_id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	Role                 string    `json:"role"`
	IdentificationNumber string    `json:"identification_number"`
	Area                 *string   `json:"area,omitempty"`
	Specialty            *string   `json:"specialty,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
