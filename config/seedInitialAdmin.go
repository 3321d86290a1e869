package config

import (
	"errors"
	"fmt"

	"dvsubmit-backend/db/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInitialSuperAdmin creates the first SUPER_ADMIN account if no user
// holds that role yet. Credentials come from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD; seeding is skipped when they are unset.
func SeedInitialSuperAdmin(db *gorm.DB) error {
	email := GetEnv("SEED_ADMIN_EMAIL")
	password := GetEnv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		Logger.Info("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	var existing models.User
	err := db.Where("role = ?", models.SuperAdminRole).First(&existing).Error
	if err == nil {
		return nil // a super admin already exists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing super admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := models.User{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     email,
		Password:  string(hashed),
		Role:      models.SuperAdminRole,
	}

	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create initial super admin: %w", err)
	}

	Logger.Info("Initial super admin seeded", zap.String("email", email))
	return nil
}
