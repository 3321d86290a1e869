package controllers

import (
	"fmt"

	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RelaySubmissionController records the confirmation number for an
// application the admin just filed on the government portal.
func (sc *SubmissionController) RelaySubmissionController(c *fiber.Ctx) error {
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
		ConfirmationNumber string `json:"confirmation_number"`
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
		config.Logger.Error("Failed to begin transaction for submission relay",
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
			config.Logger.Error("Panic during submission relay, rolling back",
				zap.Any("panic_reason", r), zap.String("application_id", applicationID))
			panic(r)
		}
	}()

	application, previousStatus, err := sc.SubmissionRepo.RelaySubmission(tx, applicationID, req.ConfirmationNumber, actor.ID)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to record submission")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit submission relay", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to record submission",
		})
	}

	sc.recordAudit(c, &actor.ID, application, models.AuditSubmissionRelayed, map[string]interface{}{
		"previous_status":     string(previousStatus),
		"new_status":          string(application.Status),
		"confirmation_number": application.ConfirmationNumber,
	})

	sc.reindex(application)

	sc.Hub.Notify(websocket.EventSubmissionRelayed, application.ID, fiber.Map{
		"status": application.Status,
	})

	if application.Email != "" && application.ConfirmationNumber != nil {
		sc.enqueueEmail(application.Email,
			"DVSubmit: your entry has been submitted",
			fmt.Sprintf("Your DV lottery entry has been submitted. Keep your confirmation number safe: %s. You will need it to check your selection status.",
				*application.ConfirmationNumber))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Submission recorded",
		"data":    application,
	})
}
