package controllers

import (
	"fmt"

	"dvsubmit-backend/applications/requests"
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SubmitApplicationController validates the full wizard payload and moves
// the caller's application into PAYMENT_PENDING.
func (ac *ApplicationController) SubmitApplicationController(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	var req requests.ApplicationFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	tx := ac.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction for submission",
			zap.Error(tx.Error), zap.String("user_id", payload.UserID.String()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Could not start database transaction",
		})
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during submission, rolling back",
				zap.Any("panic_reason", r), zap.String("user_id", payload.UserID.String()))
			panic(r)
		}
	}()

	application, previousStatus, err := ac.ApplicationRepo.ProcessApplicationSubmission(tx, payload.UserID, &req)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to submit application")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit submission", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to submit application",
		})
	}

	// A prior rejection makes this a resubmission rather than a first filing.
	resubmission := previousStatus == models.PaymentRejectedApplication ||
		previousStatus == models.RejectedApplication

	action := models.AuditApplicationSubmitted
	if resubmission {
		action = models.AuditApplicationResubmitted
	}
	ac.AuditRecorder.Record(auditEntryFor(c, &payload.UserID, application, action, map[string]interface{}{
		"previous_status": string(previousStatus),
		"new_status":      string(application.Status),
	}))

	ac.reindex(application)

	ac.Hub.Notify(websocket.EventApplicationSubmitted, application.ID, fiber.Map{
		"status":       application.Status,
		"resubmission": resubmission,
	})

	if application.Email != "" && application.PaymentAmount != nil {
		ac.enqueueEmail(application.Email,
			"DVSubmit: payment instructions",
			fmt.Sprintf("Your application has been received. Pay %s ETB for the service fee, then enter the bank transfer reference in your dashboard so we can verify it.",
				application.PaymentAmount.StringFixed(2)))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application submitted, payment pending",
		"data":    application,
	})
}
