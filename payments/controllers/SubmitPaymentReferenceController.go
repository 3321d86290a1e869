package controllers

import (
	"dvsubmit-backend/config"
	"dvsubmit-backend/db/models"
	"dvsubmit-backend/middleware"
	"dvsubmit-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SubmitPaymentReferenceController records the bank transfer reference the
// applicant paid with, ready for admin verification.
func (pc *PaymentController) SubmitPaymentReferenceController(c *fiber.Ctx) error {
	payload, ok := middleware.CurrentPayload(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "Invalid request format",
		})
	}

	tx := pc.DB.Begin()
	if tx.Error != nil {
		config.Logger.Error("Failed to begin transaction for payment reference",
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
			config.Logger.Error("Panic while attaching payment reference, rolling back",
				zap.Any("panic_reason", r), zap.String("user_id", payload.UserID.String()))
			panic(r)
		}
	}()

	application, previousStatus, err := pc.PaymentRepo.AttachPaymentReference(tx, payload.UserID, req.Reference)
	if err != nil {
		tx.Rollback()
		return respondServiceError(c, err, "Failed to record payment reference")
	}

	if err := tx.Commit().Error; err != nil {
		config.Logger.Error("Failed to commit payment reference", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Failed to record payment reference",
		})
	}

	pc.recordAudit(c, &payload.UserID, application, models.AuditPaymentReferenceAdded, map[string]interface{}{
		"previous_status": string(previousStatus),
		"new_status":      string(application.Status),
		"reference":       application.PaymentReference,
	})

	pc.reindex(application)

	pc.Hub.Notify(websocket.EventPaymentReferenceAdded, application.ID, fiber.Map{
		"reference": application.PaymentReference,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment reference recorded, awaiting verification",
		"data":    application,
	})
}
