package repositories

import (
	"errors"
	"fmt"
	"time"

	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository interface {
	RelaySubmission(tx *gorm.DB, applicationID string, confirmationNumber string, adminID uuid.UUID) (*models.Application, models.ApplicationStatus, error)
	SetSubmissionStatus(tx *gorm.DB, applicationID string, status models.ApplicationStatus, confirmationNumber *string, adminID uuid.UUID) (*models.Application, models.ApplicationStatus, error)
	GetSubmissionQueue() ([]models.Application, error)
}

type submissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{DB: db}
}

// RelaySubmission records the confirmation number the admin obtained by
// filing the application on the government portal by hand. This is the only
// place the outside system shows up; there is no programmatic call to it.
func (r *submissionRepository) RelaySubmission(
	tx *gorm.DB,
	applicationID string,
	confirmationNumber string,
	adminID uuid.UUID,
) (*models.Application, models.ApplicationStatus, error) {
	normalized, svcErr := services.NormalizeConfirmationNumber(confirmationNumber)
	if svcErr != nil {
		return nil, "", svcErr
	}

	var application models.Application
	err := tx.Where("id = ?", applicationID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", services.NewServiceError(services.CodeNotFound, "application not found")
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load application: %w", err)
	}
	previousStatus := application.Status

	if svcErr := services.EnsureTransition(application.Status, models.SubmittedApplication); svcErr != nil {
		return nil, "", svcErr
	}

	if err := r.ensureConfirmationUnused(tx, normalized, application.ID); err != nil {
		return nil, "", err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":              models.SubmittedApplication,
		"confirmation_number": normalized,
		"submitted_at":        &now,
		"submitted_by":        adminID,
	}
	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to record submission: %w", err)
	}

	if err := tx.Preload("User").First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}

// SetSubmissionStatus is the generic admin transition used by the
// submissions screen: PAYMENT_VERIFIED → SUBMITTED and SUBMITTED →
// CONFIRMED, with an optional (re)supplied confirmation number.
func (r *submissionRepository) SetSubmissionStatus(
	tx *gorm.DB,
	applicationID string,
	status models.ApplicationStatus,
	confirmationNumber *string,
	adminID uuid.UUID,
) (*models.Application, models.ApplicationStatus, error) {
	if status != models.SubmittedApplication && status != models.ConfirmedApplication {
		return nil, "", services.NewServiceError(services.CodeInvalidRequest,
			"status must be SUBMITTED or CONFIRMED")
	}

	var application models.Application
	err := tx.Where("id = ?", applicationID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", services.NewServiceError(services.CodeNotFound, "application not found")
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load application: %w", err)
	}
	previousStatus := application.Status

	if svcErr := services.EnsureTransition(application.Status, status); svcErr != nil {
		return nil, "", svcErr
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status": status,
	}

	if confirmationNumber != nil {
		normalized, svcErr := services.NormalizeConfirmationNumber(*confirmationNumber)
		if svcErr != nil {
			return nil, "", svcErr
		}
		if err := r.ensureConfirmationUnused(tx, normalized, application.ID); err != nil {
			return nil, "", err
		}
		updates["confirmation_number"] = normalized
	} else if status == models.SubmittedApplication && application.ConfirmationNumber == nil {
		return nil, "", services.NewServiceError(services.CodeValidationError,
			"a confirmation number is required to mark an application SUBMITTED")
	}

	if status == models.SubmittedApplication {
		updates["submitted_at"] = &now
		updates["submitted_by"] = adminID
	}

	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update submission status: %w", err)
	}

	if err := tx.Preload("User").First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}

// GetSubmissionQueue lists payment-verified applications waiting for an
// admin to file them on the portal, oldest verification first.
func (r *submissionRepository) GetSubmissionQueue() ([]models.Application, error) {
	var applications []models.Application
	err := r.DB.Preload("Children").Preload("User").
		Where("status = ?", models.PaymentVerifiedApplication).
		Order("payment_verified_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *submissionRepository) ensureConfirmationUnused(tx *gorm.DB, confirmationNumber string, selfID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Application{}).
		Where("confirmation_number = ? AND id <> ?", confirmationNumber, selfID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check confirmation number uniqueness: %w", err)
	}
	if count > 0 {
		return services.NewServiceError(services.CodeDuplicateConfirmation,
			"this confirmation number is already recorded for another application")
	}
	return nil
}
