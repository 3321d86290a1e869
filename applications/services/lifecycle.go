package services

import (
	"fmt"
	"regexp"
	"strings"

	"dvsubmit-backend/db/models"
)

// legalTransitions is the authoritative edge list of the application status
// machine. Everything not listed here is rejected with INVALID_STATUS.
// PAYMENT_PENDING re-enters itself when the owner attaches a payment
// reference; APPLICATION_REJECTED re-opens to PAYMENT_PENDING when the owner
// resubmits corrected data. EXPIRED is a modeled state with no inbound edge.
var legalTransitions = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.DraftApplication: {
		models.PaymentPendingApplication,
		models.RejectedApplication,
	},
	models.PaymentPendingApplication: {
		models.PaymentPendingApplication,
		models.PaymentVerifiedApplication,
		models.PaymentRejectedApplication,
		models.RejectedApplication,
	},
	models.PaymentRejectedApplication: {
		models.PaymentPendingApplication,
		models.RejectedApplication,
	},
	models.RejectedApplication: {
		models.PaymentPendingApplication,
	},
	models.PaymentVerifiedApplication: {
		models.SubmittedApplication,
		models.RejectedApplication,
	},
	models.SubmittedApplication: {
		models.ConfirmedApplication,
	},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to models.ApplicationStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// EnsureTransition returns an INVALID_STATUS error when the requested move
// is not in the edge list.
func EnsureTransition(from, to models.ApplicationStatus) *ServiceError {
	if !CanTransition(from, to) {
		return NewServiceError(CodeInvalidStatus,
			fmt.Sprintf("cannot move application from %s to %s", from, to))
	}
	return nil
}

// EnsureMutable rejects applications already relayed to the government
// portal. SUBMITTED and CONFIRMED rows are read-only for every ordinary
// mutation path, admin rejection included.
func EnsureMutable(app *models.Application) *ServiceError {
	if app.IsFrozen() {
		return NewServiceError(CodeInvalidStatus,
			fmt.Sprintf("application is %s and can no longer be modified", app.Status))
	}
	return nil
}

// confirmationNumberPattern is the DV portal contract: "20", a two-digit
// year suffix, then ten alphanumerics. Exactly 14 characters.
var confirmationNumberPattern = regexp.MustCompile(`^20\d{2}[A-Z0-9]{10}$`)

// NormalizeConfirmationNumber trims and uppercases the raw value, then
// validates it against the portal format.
func NormalizeConfirmationNumber(raw string) (string, *ServiceError) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !confirmationNumberPattern.MatchString(normalized) {
		return "", NewServiceError(CodeValidationError,
			"confirmation number must match the DV portal format (e.g. 2025AB12345678)")
	}
	return normalized, nil
}

// ValidateRejectionNote requires a non-empty, non-whitespace note.
func ValidateRejectionNote(note string) *ServiceError {
	if strings.TrimSpace(note) == "" {
		return NewServiceError(CodeValidationError, "a rejection note is required")
	}
	return nil
}

// ValidatePaymentReference requires a non-empty opaque reference string.
// Uniqueness is checked against the database by the payment workflow.
func ValidatePaymentReference(reference string) *ServiceError {
	if strings.TrimSpace(reference) == "" {
		return NewServiceError(CodeValidationError, "a payment reference is required")
	}
	return nil
}
