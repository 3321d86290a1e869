package controllers

import (
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UpdateSubmissionStatusController is the generic admin transition for the
// tail of the lifecycle: PAYMENT_VERIFIED to SUBMITTED and SUBMITTED to
// CONFIRMED, with an optional (re)supplied confirmation number on the way.
// Earlier lifecycle stages have dedicated endpoints.
func (sc *SubmissionController) UpdateSubmissionStatusController(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	applicationID := c.Params("id")
	var req struct {
		Status             string  `json:"status"`
		ConfirmationNumber *string `json:"confirmation_number"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	tx := sc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction for status update",
			zap.Error(tx.Error), zap.String("application_id", applicationID))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Could not start database transaction",
		})
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			config.Logger.Error("Panic during status update, rolling back",
				zap.Any("panic_reason", r), zap.String("application_id", applicationID))
			panic(r)
		}
	}()

	application, previousStatus, err := sc.SubmissionRepo.SetSubmissionStatus(
		tx, applicationID, models.ApplicationStatus(req.Status), req.ConfirmationNumber, actor.ID)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to update submission status")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit status update", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to update submission status",
		})
	}

	sc.reindex(application)

	sc.recordAudit(c, &actor.ID, application, models.AuditSubmissionStatusSet, map[string]interface{}{
		"previous_status":     string(previousStatus),
		"new_status":          string(application.Status),
		"confirmation_number": application.ConfirmationNumber,
	})

	if application.Status == models.ConfirmedApplication && application.Email != "" {
		sc.enqueueEmail(application.Email,
			"DVSubmit: submission confirmed",
			"Your DV lottery entry has been confirmed by the government portal. No further action is needed until selection results are published.")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Submission status updated",
		"data":    application,
	})
}

// GetSubmissionQueueController lists payment-verified applications in FIFO
// order of verification, the admin's worklist for manual filing.
func (sc *SubmissionController) GetSubmissionQueueController(c *fiber.Ctx) error {
	applications, err := sc.SubmissionRepo.GetSubmissionQueue()
	if err != nil {
		config.Logger.Error("Failed to fetch submission queue", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch submission queue",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    applications,
	})
}
