package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dvsubmit-backend/applications/services"
	"dvsubmit-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VerifyActionApprove = "approve"
	VerifyActionReject  = "reject"
)

type PaymentRepository interface {
	AttachPaymentReference(tx *gorm.DB, userID uuid.UUID, reference string) (*models.Application, models.ApplicationStatus, error)
	ProcessPaymentVerification(tx *gorm.DB, applicationID string, action string, adminID uuid.UUID) (*models.Application, models.ApplicationStatus, error)
}

type paymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

// AttachPaymentReference records the owner's bank transfer reference.
// Legal from PAYMENT_PENDING with no reference yet, and from
// PAYMENT_REJECTED (whose reference was cleared on rejection). The
// reference must not be in use by any other application; the partial unique
// index backs this check up under races.
func (r *paymentRepository) AttachPaymentReference(
	tx *gorm.DB,
	userID uuid.UUID,
	reference string,
) (*models.Application, models.ApplicationStatus, error) {
	reference = strings.TrimSpace(reference)
	if svcErr := services.ValidatePaymentReference(reference); svcErr != nil {
		return nil, "", svcErr
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

	switch application.Status {
	case models.PaymentPendingApplication:
		if application.PaymentReference != nil {
			return nil, "", services.NewServiceError(services.CodeInvalidStatus,
				"a payment reference is already attached to this application")
		}
	case models.PaymentRejectedApplication:
		// re-entry with a fresh reference
	default:
		return nil, "", services.NewServiceError(services.CodeInvalidStatus,
			fmt.Sprintf("payment reference cannot be attached while the application is %s", application.Status))
	}

	// Case-sensitive exact match against every other application.
	var count int64
	if err := tx.Model(&models.Application{}).
		Where("payment_reference = ? AND id <> ?", reference, application.ID).
		Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check payment reference uniqueness: %w", err)
	}
	if count > 0 {
		return nil, "", services.NewServiceError(services.CodeDuplicatePaymentReference,
			"this payment reference is already in use by another application")
	}

	updates := map[string]interface{}{
		"payment_reference": reference,
		"status":            models.PaymentPendingApplication,
		"payment_status":    models.PendingPayment,
	}
	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to attach payment reference: %w", err)
	}

	if err := tx.First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}

// ProcessPaymentVerification applies the admin's approve/reject decision to
// a PAYMENT_PENDING application. Approval requires a reference to be
// present; rejection clears the reference so the owner can resubmit.
func (r *paymentRepository) ProcessPaymentVerification(
	tx *gorm.DB,
	applicationID string,
	action string,
	adminID uuid.UUID,
) (*models.Application, models.ApplicationStatus, error) {
	if action != VerifyActionApprove && action != VerifyActionReject {
		return nil, "", services.NewServiceError(services.CodeInvalidRequest,
			"action must be either 'approve' or 'reject'")
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

	if application.Status != models.PaymentPendingApplication {
		return nil, "", services.NewServiceError(services.CodeInvalidStatus,
			fmt.Sprintf("payment can only be verified while PAYMENT_PENDING, application is %s", application.Status))
	}

	var updates map[string]interface{}
	now := time.Now()

	if action == VerifyActionApprove {
		if application.PaymentReference == nil {
			return nil, "", services.NewServiceError(services.CodeInvalidStatus,
				"cannot approve payment before a payment reference is attached")
		}
		updates = map[string]interface{}{
			"status":              models.PaymentVerifiedApplication,
			"payment_status":      models.VerifiedPayment,
			"payment_verified_at": &now,
			"payment_verified_by": adminID,
		}
	} else {
		updates = map[string]interface{}{
			"status":            models.PaymentRejectedApplication,
			"payment_status":    models.RejectedPayment,
			"payment_reference": nil,
		}
	}

	if err := tx.Model(&application).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to apply payment verification: %w", err)
	}

	if err := tx.Preload("User").First(&application, "id = ?", application.ID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to reload application: %w", err)
	}
	return &application, previousStatus, nil
}
