package repositories

import (
	"errors"
	"fmt"
	"time"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProcessApplicationSubmission moves the caller's application into
// PAYMENT_PENDING: the initial DRAFT submission and the corrected resubmit
// after APPLICATION_REJECTED or PAYMENT_REJECTED both land here. Applicant
// fields are overwritten with the submitted payload; on a resubmit the
// rejection note is cleared and any existing payment reference is kept.
func (r *applicationRepository) ProcessApplicationSubmission(
	tx *gorm.DB,
	userID uuid.UUID,
	req *requests.ApplicationFieldsRequest,
) (*models.Application, models.ApplicationStatus, error) {
	if msg := services.ValidateCompleteApplication(req); msg != "" {
		return nil, "", services.NewServiceError(services.CodeValidationError, msg)
	}

	var application models.Application
	err := tx.Where("user_id = ?", userID).First(&application).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", services.NewServiceError(services.CodeNotFound, "no application found for this account")
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to load application: %w", err)
	}
	previousStatus := application.Status

	if svcErr := services.EnsureMutable(&application); svcErr != nil {
		return nil, "", svcErr
	}
	if svcErr := services.EnsureTransition(application.Status, models.PaymentPendingApplication); svcErr != nil {
		return nil, "", svcErr
	}
	// PAYMENT_PENDING re-enters itself only for attaching a reference, not
	// for editing fields.
	if application.Status == models.PaymentPendingApplication {
		return nil, "", services.NewServiceError(services.CodeInvalidStatus,
			"application is already awaiting payment and cannot be edited")
	}

	if err := applyFields(tx, &application, req); err != nil {
		return nil, "", err
	}

	updates := map[string]interface{}{
		"status":         models.PaymentPendingApplication,
		"payment_status": models.PendingPayment,
		"rejection_note": nil,
		"rejected_at":    nil,
		"rejected_by":    nil,
	}

	if application.PaymentAmount == nil {
		fee := serviceFee()
		updates["payment_amount"] = fee
	}

	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to update application status: %w", err)
	}

	if err := tx.Preload("Children").First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}

// serviceFee is the DV assistance fee in ETB, configurable per deployment.
func serviceFee() decimal.Decimal {
	raw := config.GetEnvOrDefault("SERVICE_FEE_ETB", "850.00")
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NewFromInt(850)
	}
	return fee
}

// ProcessApplicationRejection moves any non-relayed application into
// APPLICATION_REJECTED with the admin's note.
func (r *applicationRepository) ProcessApplicationRejection(
	tx *gorm.DB,
	applicationID string,
	note string,
	adminID uuid.UUID,
) (*models.Application, models.ApplicationStatus, error) {
	if svcErr := services.ValidateRejectionNote(note); svcErr != nil {
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

	if svcErr := services.EnsureMutable(&application); svcErr != nil {
		return nil, "", svcErr
	}
	if svcErr := services.EnsureTransition(application.Status, models.RejectedApplication); svcErr != nil {
		return nil, "", svcErr
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.RejectedApplication,
		"rejection_note": note,
		"rejected_at":    &now,
		"rejected_by":    adminID,
	}

	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reject application: %w", err)
	}

	if err := tx.Preload("Children").First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}
