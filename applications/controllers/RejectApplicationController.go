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

// RejectApplicationController moves an application into APPLICATION_REJECTED
// with a note the applicant sees when they come back to fix their entry.
func (ac *ApplicationController) RejectApplicationController(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	applicationID := c.Params("id")
	var req requests.RejectApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	tx := ac.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction for rejection",
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
			config.Logger.Error("Panic during rejection, rolling back",
				zap.Any("panic_reason", r), zap.String("application_id", applicationID))
			panic(r)
		}
	}()

	application, previousStatus, err := ac.ApplicationRepo.ProcessApplicationRejection(tx, applicationID, req.Note, actor.ID)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to reject application")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit rejection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to reject application",
		})
	}

	ac.AuditRecorder.Record(auditEntryFor(c, &actor.ID, application, models.AuditApplicationRejected, map[string]interface{}{
		"previous_status": string(previousStatus),
		"new_status":      string(application.Status),
		"note":            req.Note,
	}))

	ac.reindex(application)

	ac.Hub.Notify(websocket.EventApplicationRejected, application.ID, fiber.Map{
		"status": application.Status,
	})

	if application.Email != "" {
		ac.enqueueEmail(application.Email,
			"DVSubmit: your application needs changes",
			fmt.Sprintf("An administrator reviewed your application and sent it back: %s. Update your entry and submit it again.", req.Note))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application rejected",
		"data":    application,
	})
}
