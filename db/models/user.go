package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	UserRole       Role = "USER"
	AdminRole      Role = "ADMIN"
	SuperAdminRole Role = "SUPER_ADMIN"
)

// User represents system users with role-based access
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Password    string    `json:"-"` // Never include in JSON responses

	// Role and account state
	Role      Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Blocked   bool       `gorm:"default:false" json:"blocked"`
	BlockedAt *time.Time `json:"blocked_at"`
	BlockedBy *uuid.UUID `gorm:"type:uuid" json:"blocked_by"`

	// Authenticator-based second factor (admin accounts)
	TOTPSecret  string `json:"-" gorm:"column:totp_secret"`
	TOTPEnabled bool   `gorm:"default:false" json:"totp_enabled"`

	LastLoginAt *time.Time `json:"last_login_at"`

	// Audit fields
	CreatedBy *string        `json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// IsAdmin reports whether the user can perform back-office actions.
// Blocked accounts are never admins, whatever their role says.
func (u *User) IsAdmin() bool {
	return !u.Blocked && (u.Role == AdminRole || u.Role == SuperAdminRole)
}

// IsSuperAdmin reports whether the user can manage other users' roles.
func (u *User) IsSuperAdmin() bool {
	return !u.Blocked && u.Role == SuperAdminRole
}
