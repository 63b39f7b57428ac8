package entity

import "time"

// User is the centralized authentication table. Super Admins have no tenant.
type User struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TenantID             *uint     `gorm:"index" json:"tenant_id"`
	Username             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email                string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password             string    `gorm:"type:text;not null" json:"-"`
	Role                 string    `gorm:"type:varchar(30);not null;index" json:"role"`
	IdentificationNumber string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"identification_number"`
	Area                 *string   `gorm:"type:varchar(100)" json:"area,omitempty"`
	Specialty            *string   `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsSpecialist checks the user's role
func (u *User) IsSpecialist() bool {
	return u.Role == RoleSpecialist
}

// BelongsTo reports whether the user is scoped to tenantID.
func (u *User) BelongsTo(tenantID uint) bool {
	return u.TenantID != nil && *u.TenantID == tenantID
}
