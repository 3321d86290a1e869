package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) (*models.User, error)
	SetUserRole(userID uuid.UUID, role models.Role, updatedBy uuid.UUID) (*models.User, error)
	SetUserBlocked(userID uuid.UUID, blocked bool, actorID uuid.UUID) (*models.User, error)
	TouchLastLogin(userID uuid.UUID) error
	GetFilteredUsers(pageSize int, offset int, filters map[string]string) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *models.User) (*models.User, error) {
	var existing models.User
	err := r.db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("a user with that email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(user *models.User) (*models.User, error) {
	if err := r.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *userRepository) SetUserRole(userID uuid.UUID, role models.Role, updatedBy uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	updatedByStr := updatedBy.String()
	err := r.db.Model(&user).Updates(map[string]interface{}{
		"role":       role,
		"updated_by": &updatedByStr,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetUserBlocked(userID uuid.UUID, blocked bool, actorID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"blocked": blocked}
	if blocked {
		now := time.Now()
		updates["blocked_at"] = &now
		updates["blocked_by"] = actorID
	} else {
		updates["blocked_at"] = nil
		updates["blocked_by"] = nil
	}

	if err := r.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user blocked flag: %w", err)
	}

	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLastLogin(userID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", &now).Error
}

func (r *userRepository) GetFilteredUsers(pageSize int, offset int, filters map[string]string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.Model(&models.User{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "role":
			db = db.Where("role = ?", strings.ToUpper(value))
		case "blocked":
			db = db.Where("blocked = ?", strings.EqualFold(value, "true"))
		case "email":
			db = db.Where("email ILIKE ?", "%"+value+"%")
		case "name":
			pattern := "%" + value + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&users).Error

	return users, total, err
}
